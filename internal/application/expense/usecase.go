// Package expense implementa el registro de gastos. Los gastos no tocan el
// stock; solo los consumen los reportes para la ganancia neta.
package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/domain"
	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// UseCase casos de uso de gastos.
type UseCase struct {
	expenses repository.ExpenseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(expenses repository.ExpenseRepository) *UseCase {
	return &UseCase{expenses: expenses}
}

// Create registra un gasto; la fecha la fija el servidor y no se edita.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !in.Amount.IsPositive() || strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}
	e := &entity.Expense{
		ID:          uuid.New().String(),
		Amount:      in.Amount,
		Description: in.Description,
		Date:        time.Now(),
	}
	if err := uc.expenses.Create(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// GetByID obtiene un gasto por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	e, err := uc.expenses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, &domain.NotFoundError{Entity: "gasto", ID: id}
	}
	return toExpenseResponse(e), nil
}

// Update cambia monto y descripción de un gasto existente.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !in.Amount.IsPositive() || strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}
	e, err := uc.expenses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, &domain.NotFoundError{Entity: "gasto", ID: id}
	}
	e.Amount = in.Amount
	e.Description = in.Description
	if err := uc.expenses.Update(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// Delete elimina un gasto. A diferencia de movimientos y ventas no hay
// borrado lógico: un gasto no respalda ningún número de stock.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	e, err := uc.expenses.GetByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return &domain.NotFoundError{Entity: "gasto", ID: id}
	}
	return uc.expenses.Delete(id)
}

// List lista gastos; sin filtros aplica "solo hoy".
func (uc *UseCase) List(ctx context.Context, filter repository.ExpenseFilter) ([]dto.ExpenseResponse, error) {
	if filter.Empty() {
		now := time.Now()
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to := from.Add(24*time.Hour - time.Nanosecond)
		filter.From = &from
		filter.To = &to
	}
	list, err := uc.expenses.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
	}
}
