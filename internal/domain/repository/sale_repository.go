package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/papeleria/papeleria-api/internal/domain/entity"
)

// SaleFilter filtros explícitos para el listado de ventas.
// Por defecto solo se listan ventas activas con total > 0: así las ventas
// anuladas desaparecen de las vistas normales sin borrado físico.
type SaleFilter struct {
	PaymentMethod string
	From          *time.Time
	To            *time.Time
	MinTotal      *decimal.Decimal
	MaxTotal      *decimal.Decimal
	IncludeVoided bool
}

// Empty indica ausencia de filtros de fecha (aplica "solo hoy").
func (f SaleFilter) Empty() bool { return f.From == nil && f.To == nil }

// SaleLineFilter filtros para buscar renglones de venta de forma transversal.
type SaleLineFilter struct {
	ProductName string // contiene, sin mayúsculas
	From        *time.Time
	To          *time.Time
}

// SaleRepository define el puerto de persistencia para Sale y sus renglones.
// Los renglones viven y mueren con su venta: Create los inserta, Update los
// reemplaza en bloque y nunca se direccionan de forma independiente.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// GetByID devuelve la venta con sus renglones en orden de inserción.
	GetByID(id string) (*entity.Sale, error)
	// Update persiste cabecera y reemplaza todos los renglones.
	Update(sale *entity.Sale) error
	// Search ordena por fecha descendente y no carga renglones.
	Search(filter SaleFilter, limit, offset int) ([]*entity.Sale, int, error)
	// SumTotal suma el total de todas las ventas que cumplen el filtro.
	SumTotal(filter SaleFilter) (decimal.Decimal, error)
	SearchLines(filter SaleLineFilter, limit, offset int) ([]*entity.SaleLine, int, error)
}
