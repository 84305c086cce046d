// Package report implementa los reportes derivados del libro de stock y las
// ventas: reporte general (ganancia neta, ventas, más vendidos), stock bajo
// y exportación a PDF. Todo es de solo lectura; ninguna operación muta
// estado y los totales son eventualmente consistentes con mutaciones en
// vuelo.
package report

import (
	"context"
	"time"

	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// Umbral por defecto para el reporte de stock bajo.
const DefaultLowStockThreshold = 3

// TopProductsLimit tamaño del ranking de más vendidos.
const TopProductsLimit = 10

// PDFGenerator puerto de render del reporte general a PDF.
type PDFGenerator interface {
	GenerateReportPDF(report *dto.GeneralReportResponse, from, to time.Time) ([]byte, error)
}

// UseCase casos de uso de reportes.
type UseCase struct {
	reports  repository.ReportRepository
	products repository.ProductRepository
	pdf      PDFGenerator
}

// NewUseCase construye el caso de uso. pdf puede ser nil si la exportación
// no está cableada (los endpoints JSON siguen funcionando).
func NewUseCase(reports repository.ReportRepository, products repository.ProductRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{reports: reports, products: products, pdf: pdf}
}

// General calcula el reporte del rango [from, to] (fechas de día completo):
// ganancia neta = Σ(cantidad × (precio venta − precio compra)) − gastos,
// dinero total en ventas, número de ventas y top de más vendidos.
func (uc *UseCase) General(ctx context.Context, from, to time.Time) (*dto.GeneralReportResponse, error) {
	start := startOfDay(from)
	end := endOfDay(to)

	profit, err := uc.reports.SumProfit(start, end)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.reports.SumSalesTotal(start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.reports.SumExpenses(start, end)
	if err != nil {
		return nil, err
	}
	count, err := uc.reports.CountSales(start, end)
	if err != nil {
		return nil, err
	}
	top, err := uc.reports.TopSelling(start, end, TopProductsLimit)
	if err != nil {
		return nil, err
	}

	topItems := make([]dto.TopProductResponse, 0, len(top))
	for _, row := range top {
		topItems = append(topItems, dto.TopProductResponse{
			ProductID: row.ProductID,
			Name:      row.Name,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue,
		})
	}
	return &dto.GeneralReportResponse{
		TotalProfit:   profit.Sub(expenses),
		TotalExpenses: expenses,
		TotalRevenue:  revenue,
		SaleCount:     count,
		TopProducts:   topItems,
	}, nil
}

// GeneralPDF genera el reporte general y lo renderiza a PDF.
func (uc *UseCase) GeneralPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	r, err := uc.General(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReportPDF(r, from, to)
}

// LowStock lista productos con stock <= umbral (3 por defecto).
func (uc *UseCase) LowStock(ctx context.Context, threshold *int) ([]dto.ProductResponse, error) {
	t := DefaultLowStockThreshold
	if threshold != nil {
		t = *threshold
	}
	list, err := uc.products.ListByStockLessEq(t)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Stock:         p.Stock,
		Category:      p.Category,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}
