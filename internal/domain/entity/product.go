package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la papelería.
// Stock es un entero siempre >= 0; solo se escribe a través de stock.Adjust.
type Product struct {
	ID            string
	Name          string // único, comparación sin mayúsculas y sin espacios extremos
	Description   string
	PurchasePrice decimal.Decimal // precio de compra (>= 0)
	SalePrice     decimal.Decimal // precio de venta (>= 0)
	Stock         int
	Category      string
	Active        bool
	CreatedAt     time.Time // fecha de registro, se fija una sola vez
}
