package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest un renglón solicitado dentro de una venta.
type SaleLineRequest struct {
	ProductID string `json:"productoId" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"required,gt=0"`
}

// CreateSaleRequest body para POST /api/ventas.
type CreateSaleRequest struct {
	PaymentMethod string            `json:"metodoPago" validate:"required"`
	Lines         []SaleLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// UpdateSaleRequest body para PUT /api/ventas/:id. Reemplaza todos los
// renglones; los subtotales se recotizan al precio actual del producto.
type UpdateSaleRequest struct {
	PaymentMethod string            `json:"metodoPago" validate:"required"`
	Lines         []SaleLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// SaleSearchQuery filtros de GET /api/ventas.
type SaleSearchQuery struct {
	PageRequest
	PaymentMethod string `query:"metodoPago"`
	From          string `query:"desde"`
	To            string `query:"hasta"`
	MinTotal      string `query:"minTotal"`
	MaxTotal      string `query:"maxTotal"`
	IncludeVoided bool   `query:"incluirAnuladas"`
}

// SaleLineSearchQuery filtros de GET /api/ventas/detalles.
type SaleLineSearchQuery struct {
	PageRequest
	ProductName string `query:"nombreProducto"`
	From        string `query:"desde"`
	To          string `query:"hasta"`
}

// SaleLineResponse vista pública de un renglón.
type SaleLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productoId"`
	ProductName string          `json:"nombreProducto,omitempty"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precioUnitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse vista pública de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	Date          time.Time          `json:"fecha"`
	PaymentMethod string             `json:"metodoPago"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"estado"`
	Lines         []SaleLineResponse `json:"detalles,omitempty"`
}

// SaleListResponse página de ventas más el total acumulado de todas las
// ventas que cumplen el filtro (no solo la página actual).
type SaleListResponse struct {
	Items      []SaleResponse  `json:"items"`
	GrandTotal decimal.Decimal `json:"totalGeneral"`
	Page       PageResponse    `json:"page"`
}

// SaleLineListResponse página de renglones de venta.
type SaleLineListResponse struct {
	Items []SaleLineResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
