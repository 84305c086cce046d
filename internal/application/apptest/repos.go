package apptest

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// ── ProductRepository ────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = copyProduct(p)
	r.s.track(p.ID)
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *productRepo) GetByName(name string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if strings.EqualFold(p.Name, name) {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.products[p.ID]
	if !ok {
		return nil
	}
	c := copyProduct(p)
	c.Stock = stored.Stock // Update nunca escribe stock
	r.s.products[p.ID] = c
	return nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) UpdateStock(id string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *productRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	active := true
	if filter.Active != nil {
		active = *filter.Active
	}
	var matched []*entity.Product
	for _, p := range r.s.products {
		if p.Active != active {
			continue
		}
		if !foldContains(p.Name, filter.Name) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		matched = append(matched, copyProduct(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := len(matched)
	return paginate(matched, limit, offset), total, nil
}

func (r *productRepo) ListByIDs(ids []string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, copyProduct(p))
		}
	}
	return out, nil
}

func (r *productRepo) ListByStockLessEq(threshold int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Stock <= threshold {
			out = append(out, copyProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

func (r *productRepo) ListRefs() ([]repository.ProductRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.ProductRef
	for _, p := range r.s.products {
		out = append(out, repository.ProductRef{ID: p.ID, Name: p.Name, SalePrice: p.SalePrice})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) DistinctCategories() ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.s.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ── MovementRepository ───────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements[m.ID] = copyMovement(m)
	r.s.track(m.ID)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return copyMovement(m), nil
}

func (r *movementRepo) Update(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movements[m.ID]; ok {
		r.s.movements[m.ID] = copyMovement(m)
	}
	return nil
}

func (r *movementRepo) Search(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*entity.StockMovement
	for _, m := range r.s.movements {
		if !filter.IncludeReversed && m.Reversed {
			continue
		}
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, copyMovement(m))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := len(matched)
	return paginate(matched, limit, offset), total, nil
}

// ── SaleRepository ───────────────────────────────────────────────────────────

type saleRepo struct{ s *Store }

var _ repository.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(v *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[v.ID] = copySale(v)
	r.s.track(v.ID)
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	c := copySale(v)
	for i := range c.Lines {
		if p, ok := r.s.products[c.Lines[i].ProductID]; ok {
			c.Lines[i].ProductName = p.Name
		}
	}
	return c, nil
}

func (r *saleRepo) Update(v *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[v.ID]; ok {
		r.s.sales[v.ID] = copySale(v)
	}
	return nil
}

func (r *saleRepo) matches(v *entity.Sale, filter repository.SaleFilter) bool {
	if !filter.IncludeVoided {
		if v.Status != entity.SaleStatusActive || !v.Total.IsPositive() {
			return false
		}
	}
	if filter.PaymentMethod != "" && !strings.EqualFold(v.PaymentMethod, filter.PaymentMethod) {
		return false
	}
	if filter.From != nil && v.Date.Before(*filter.From) {
		return false
	}
	if filter.To != nil && v.Date.After(*filter.To) {
		return false
	}
	if filter.MinTotal != nil && v.Total.LessThan(*filter.MinTotal) {
		return false
	}
	if filter.MaxTotal != nil && v.Total.GreaterThan(*filter.MaxTotal) {
		return false
	}
	return true
}

func (r *saleRepo) Search(filter repository.SaleFilter, limit, offset int) ([]*entity.Sale, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*entity.Sale
	for _, v := range r.s.sales {
		if r.matches(v, filter) {
			c := copySale(v)
			c.Lines = nil
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	total := len(matched)
	return paginate(matched, limit, offset), total, nil
}

func (r *saleRepo) SumTotal(filter repository.SaleFilter) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, v := range r.s.sales {
		if r.matches(v, filter) {
			total = total.Add(v.Total)
		}
	}
	return total, nil
}

func (r *saleRepo) SearchLines(filter repository.SaleLineFilter, limit, offset int) ([]*entity.SaleLine, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	type dated struct {
		line *entity.SaleLine
		date time.Time
	}
	var matched []dated
	for _, v := range r.s.sales {
		if filter.From != nil && v.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && v.Date.After(*filter.To) {
			continue
		}
		for i := range v.Lines {
			l := v.Lines[i]
			if p, ok := r.s.products[l.ProductID]; ok {
				l.ProductName = p.Name
			}
			if !foldContains(l.ProductName, filter.ProductName) {
				continue
			}
			matched = append(matched, dated{line: &l, date: v.Date})
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].date.After(matched[j].date) })
	out := make([]*entity.SaleLine, 0, len(matched))
	for _, d := range matched {
		out = append(out, d.line)
	}
	total := len(out)
	return paginate(out, limit, offset), total, nil
}

// ── ExpenseRepository ────────────────────────────────────────────────────────

type expenseRepo struct{ s *Store }

var _ repository.ExpenseRepository = (*expenseRepo)(nil)

func (r *expenseRepo) Create(e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.expenses[e.ID] = copyExpense(e)
	r.s.track(e.ID)
	return nil
}

func (r *expenseRepo) GetByID(id string) (*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, nil
	}
	return copyExpense(e), nil
}

func (r *expenseRepo) Update(e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[e.ID]; ok {
		r.s.expenses[e.ID] = copyExpense(e)
	}
	return nil
}

func (r *expenseRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.expenses, id)
	return nil
}

func (r *expenseRepo) List(filter repository.ExpenseFilter) ([]*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Expense
	for _, e := range r.s.expenses {
		if !foldContains(e.Description, filter.Description) {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		out = append(out, copyExpense(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Description < out[j].Description
	})
	return out, nil
}

// ── ReportRepository ─────────────────────────────────────────────────────────

type reportRepo struct{ s *Store }

var _ repository.ReportRepository = (*reportRepo)(nil)

func (r *reportRepo) salesInRange(from, to time.Time) []*entity.Sale {
	var out []*entity.Sale
	for _, v := range r.s.sales {
		if v.Status != entity.SaleStatusActive {
			continue
		}
		if v.Date.Before(from) || v.Date.After(to) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (r *reportRepo) SumSalesTotal(from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, v := range r.salesInRange(from, to) {
		total = total.Add(v.Total)
	}
	return total, nil
}

func (r *reportRepo) SumProfit(from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, v := range r.salesInRange(from, to) {
		for _, l := range v.Lines {
			p, ok := r.s.products[l.ProductID]
			if !ok {
				continue
			}
			margin := p.SalePrice.Sub(p.PurchasePrice)
			total = total.Add(margin.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
	}
	return total, nil
}

func (r *reportRepo) CountSales(from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.salesInRange(from, to))), nil
}

func (r *reportRepo) TopSelling(from, to time.Time, limit int) ([]repository.TopProductRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	agg := make(map[string]*repository.TopProductRow)
	for _, v := range r.salesInRange(from, to) {
		for _, l := range v.Lines {
			row, ok := agg[l.ProductID]
			if !ok {
				name := ""
				if p, found := r.s.products[l.ProductID]; found {
					name = p.Name
				}
				row = &repository.TopProductRow{ProductID: l.ProductID, Name: name, Revenue: decimal.Zero}
				agg[l.ProductID] = row
			}
			row.UnitsSold += int64(l.Quantity)
			row.Revenue = row.Revenue.Add(l.Subtotal)
		}
	}
	out := make([]repository.TopProductRow, 0, len(agg))
	for _, row := range agg {
		out = append(out, *row)
	}
	// Empates por id ascendente para resultados deterministas.
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitsSold != out[j].UnitsSold {
			return out[i].UnitsSold > out[j].UnitsSold
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reportRepo) SumExpenses(from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, e := range r.s.expenses {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total, nil
}
