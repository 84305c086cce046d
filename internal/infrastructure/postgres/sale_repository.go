package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Los renglones se insertan con una posición secuencial para conservar el
// orden en que se capturaron.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y todos los renglones.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sales (id, date, payment_method, total, status) VALUES ($1, $2, $3, $4, $5)`,
		sale.ID, sale.Date, sale.PaymentMethod, sale.Total, sale.Status)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return r.insertLines(sale)
}

// GetByID devuelve la venta con sus renglones en orden de captura, con el
// nombre actual del producto resuelto por join.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(),
		`SELECT id, date, payment_method, total, status FROM sales WHERE id = $1`, id).
		Scan(&s.ID, &s.Date, &s.PaymentMethod, &s.Total, &s.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT l.id, l.sale_id, l.product_id, COALESCE(p.name, ''), l.quantity, l.unit_price, l.subtotal
		FROM sale_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.sale_id = $1
		ORDER BY l.position`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		s.Lines = append(s.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update persiste la cabecera y reemplaza los renglones en bloque.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET date = $2, payment_method = $3, total = $4, status = $5 WHERE id = $1`,
		sale.ID, sale.Date, sale.PaymentMethod, sale.Total, sale.Status)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM sale_lines WHERE sale_id = $1`, sale.ID); err != nil {
		return fmt.Errorf("delete sale lines: %w", err)
	}
	return r.insertLines(sale)
}

func (r *SaleRepo) insertLines(sale *entity.Sale) error {
	for i, l := range sale.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, subtotal, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, sale.ID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal, i)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

func saleWhere(filter repository.SaleFilter) (string, []any) {
	where := `WHERE 1=1`
	var args []any
	if !filter.IncludeVoided {
		where += ` AND status = 'ACTIVA' AND total > 0`
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		where += fmt.Sprintf(" AND lower(payment_method) = lower($%d)", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filter.MinTotal != nil {
		args = append(args, *filter.MinTotal)
		where += fmt.Sprintf(" AND total >= $%d", len(args))
	}
	if filter.MaxTotal != nil {
		args = append(args, *filter.MaxTotal)
		where += fmt.Sprintf(" AND total <= $%d", len(args))
	}
	return where, args
}

// Search lista cabeceras de venta (sin renglones), las más recientes primero.
func (r *SaleRepo) Search(filter repository.SaleFilter, limit, offset int) ([]*entity.Sale, int, error) {
	where, args := saleWhere(filter)

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT id, date, payment_method, total, status FROM sales %s ORDER BY date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.PaymentMethod, &s.Total, &s.Status); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// SumTotal suma el total de todas las ventas que cumplen el filtro.
func (r *SaleRepo) SumTotal(filter repository.SaleFilter) (decimal.Decimal, error) {
	where, args := saleWhere(filter)
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(total), 0) FROM sales `+where, args...).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales total: %w", err)
	}
	return sum, nil
}

// SearchLines busca renglones de venta de forma transversal a las ventas,
// los de ventas más recientes primero.
func (r *SaleRepo) SearchLines(filter repository.SaleLineFilter, limit, offset int) ([]*entity.SaleLine, int, error) {
	where := `WHERE 1=1`
	var args []any
	if filter.ProductName != "" {
		args = append(args, "%"+filter.ProductName+"%")
		where += fmt.Sprintf(" AND p.name ILIKE $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND s.date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND s.date <= $%d", len(args))
	}
	base := `
		FROM sale_lines l
		JOIN sales s ON s.id = l.sale_id
		LEFT JOIN products p ON p.id = l.product_id
		` + where

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) `+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sale lines: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT l.id, l.sale_id, l.product_id, COALESCE(p.name, ''), l.quantity, l.unit_price, l.subtotal
		%s ORDER BY s.date DESC, l.position LIMIT $%d OFFSET $%d`,
		base, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search sale lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, 0, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}
