package dto

import "github.com/shopspring/decimal"

// TopProductResponse un producto del ranking de más vendidos.
type TopProductResponse struct {
	ProductID string          `json:"productoId"`
	Name      string          `json:"nombre"`
	UnitsSold int64           `json:"cantidadVendida"`
	Revenue   decimal.Decimal `json:"totalGenerado"`
}

// GeneralReportResponse reporte general de un rango de fechas.
// TotalProfit ya descuenta los gastos del período (ganancia neta).
type GeneralReportResponse struct {
	TotalProfit   decimal.Decimal      `json:"totalGanancias"`
	TotalExpenses decimal.Decimal      `json:"totalGastos"`
	TotalRevenue  decimal.Decimal      `json:"totalDineroEnVentas"`
	SaleCount     int64                `json:"totalVentas"`
	TopProducts   []TopProductResponse `json:"productosMasVendidos"`
}
