package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductRow fila del ranking de productos más vendidos.
type TopProductRow struct {
	ProductID string
	Name      string
	UnitsSold int64
	Revenue   decimal.Decimal
}

// ReportRepository consultas agregadas de solo lectura para reportes.
// Ninguna de estas operaciones muta estado; pueden ejecutarse contra una
// réplica de lectura.
type ReportRepository interface {
	// SumSalesTotal suma el total vendido entre dos instantes.
	SumSalesTotal(from, to time.Time) (decimal.Decimal, error)
	// SumProfit suma qty × (precio venta − precio compra) de los renglones
	// de venta del rango, a precios actuales del producto.
	SumProfit(from, to time.Time) (decimal.Decimal, error)
	CountSales(from, to time.Time) (int64, error)
	// TopSelling ordena por unidades vendidas desc; empates por id de
	// producto ascendente para que el resultado sea determinista.
	TopSelling(from, to time.Time, limit int) ([]TopProductRow, error)
	SumExpenses(from, to time.Time) (decimal.Decimal, error)
}
