package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/productos.
// Estado y fecha de registro los fija el servidor; Stock inicial > 0 genera
// un movimiento INGRESO automático.
type CreateProductRequest struct {
	Name          string          `json:"nombre" validate:"required"`
	Description   string          `json:"descripcion"`
	PurchasePrice decimal.Decimal `json:"precioCompra"`
	SalePrice     decimal.Decimal `json:"precioVenta"`
	Stock         int             `json:"stock" validate:"omitempty,min=0"`
	Category      string          `json:"categoria"`
}

// UpdateProductRequest body para PUT /api/productos/:id.
// Semántica parcial: los campos nil no se tocan. Stock no es editable aquí.
type UpdateProductRequest struct {
	Name          *string          `json:"nombre"`
	Description   *string          `json:"descripcion"`
	PurchasePrice *decimal.Decimal `json:"precioCompra"`
	SalePrice     *decimal.Decimal `json:"precioVenta"`
	Category      *string          `json:"categoria"`
}

// AddStockRequest body para PATCH /api/productos/:id/agregar.
type AddStockRequest struct {
	Quantity int    `json:"cantidad" validate:"required,gt=0"`
	Note     string `json:"observacion"`
}

// BulkEntry un producto dentro de un ingreso masivo.
type BulkEntry struct {
	ProductID string `json:"productoId" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"required,gt=0"`
	Note      string `json:"observacion"`
}

// BulkAddStockRequest body para PATCH /api/productos/agregar-masivo.
type BulkAddStockRequest struct {
	Entries []BulkEntry `json:"movimientos" validate:"required,min=1,dive"`
}

// ProductListQuery filtros del listado de productos.
type ProductListQuery struct {
	PageRequest
	Name     string `query:"nombre"`
	Category string `query:"categoria"`
	Active   *bool  `query:"estado"`
}

// ProductResponse vista pública de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion"`
	PurchasePrice decimal.Decimal `json:"precioCompra"`
	SalePrice     decimal.Decimal `json:"precioVenta"`
	Stock         int             `json:"stock"`
	Category      string          `json:"categoria"`
	Active        bool            `json:"estado"`
	CreatedAt     time.Time       `json:"fechaRegistro"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
