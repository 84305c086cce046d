package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de reportes sobre PostgreSQL. Solo lectura;
// las ventas anuladas quedan fuera de todos los agregados.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SumSalesTotal suma el total vendido entre dos instantes.
func (r *ReportRepo) SumSalesTotal(from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'ACTIVA' AND date BETWEEN $1 AND $2`, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales total: %w", err)
	}
	return sum, nil
}

// SumProfit suma cantidad × (precio venta − precio compra) de los renglones
// del rango. Usa los precios actuales del producto, no los del momento de la
// venta.
func (r *ReportRepo) SumProfit(from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(l.quantity * (p.sale_price - p.purchase_price)), 0)
		FROM sale_lines l
		JOIN sales s ON s.id = l.sale_id
		JOIN products p ON p.id = l.product_id
		WHERE s.status = 'ACTIVA' AND s.date BETWEEN $1 AND $2`, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum profit: %w", err)
	}
	return sum, nil
}

// CountSales cuenta las ventas activas del rango.
func (r *ReportRepo) CountSales(from, to time.Time) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(), `
		SELECT COUNT(*) FROM sales
		WHERE status = 'ACTIVA' AND date BETWEEN $1 AND $2`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return count, nil
}

// TopSelling ranking de productos por unidades vendidas; empates por id de
// producto ascendente para que el resultado sea determinista.
func (r *ReportRepo) TopSelling(from, to time.Time, limit int) ([]repository.TopProductRow, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT l.product_id, COALESCE(p.name, ''), SUM(l.quantity), COALESCE(SUM(l.subtotal), 0)
		FROM sale_lines l
		JOIN sales s ON s.id = l.sale_id
		LEFT JOIN products p ON p.id = l.product_id
		WHERE s.status = 'ACTIVA' AND s.date BETWEEN $1 AND $2
		GROUP BY l.product_id, p.name
		ORDER BY SUM(l.quantity) DESC, l.product_id
		LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling: %w", err)
	}
	defer rows.Close()

	var list []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SumExpenses suma los gastos del rango.
func (r *ReportRepo) SumExpenses(from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date BETWEEN $1 AND $2`, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return sum, nil
}
