package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto del negocio. No interactúa con el stock; los reportes
// lo consumen para calcular la ganancia neta.
type Expense struct {
	ID          string
	Amount      decimal.Decimal // > 0
	Description string
	Date        time.Time // se fija en la creación
}
