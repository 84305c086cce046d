package repository

import (
	"time"

	"github.com/papeleria/papeleria-api/internal/domain/entity"
)

// ExpenseFilter filtros para el listado de gastos.
type ExpenseFilter struct {
	Description string // contiene, sin mayúsculas
	From        *time.Time
	To          *time.Time
}

// Empty indica ausencia total de filtros (aplica "solo hoy").
func (f ExpenseFilter) Empty() bool {
	return f.Description == "" && f.From == nil && f.To == nil
}

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	Delete(id string) error
	// List ordena por fecha descendente y luego descripción.
	List(filter ExpenseFilter) ([]*entity.Expense, error)
}
