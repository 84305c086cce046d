package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Una venta anulada conserva su fila y su id, pero
// con total 0 y sin renglones (borrado lógico).
const (
	SaleStatusActive = "ACTIVA"
	SaleStatusVoided = "ANULADA"
)

// Sale es una transacción de venta con sus renglones.
// Total debe recalcularse siempre que cambien los renglones.
type Sale struct {
	ID            string
	Date          time.Time // se fija en la creación, inmutable
	PaymentMethod string
	Total         decimal.Decimal
	Status        string
	Lines         []SaleLine // propiedad exclusiva de la venta
}

// SaleLine es un renglón de venta. UnitPrice es el precio de venta del
// producto congelado al momento de la operación, no una referencia viva.
// Los renglones solo se crean o reemplazan junto con su venta.
type SaleLine struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // denormalizado en lecturas (join), no se persiste
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // Quantity × UnitPrice
}
