package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest body para POST /api/gastos.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"monto"`
	Description string          `json:"descripcion" validate:"required"`
}

// UpdateExpenseRequest body para PUT /api/gastos/:id. La fecha no se edita.
type UpdateExpenseRequest struct {
	Amount      decimal.Decimal `json:"monto"`
	Description string          `json:"descripcion" validate:"required"`
}

// ExpenseListQuery filtros de GET /api/gastos.
type ExpenseListQuery struct {
	Description string `query:"nombre"`
	From        string `query:"desde"`
	To          string `query:"hasta"`
}

// ExpenseResponse vista pública de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"monto"`
	Description string          `json:"descripcion"`
	Date        time.Time       `json:"fecha"`
}
