package repository

import (
	"time"

	"github.com/papeleria/papeleria-api/internal/domain/entity"
)

// MovementFilter filtros explícitos para la búsqueda de movimientos.
// IncludeReversed controla la política de ocultar reversas (quantity 0);
// por defecto no se listan para no ensuciar el historial visible.
type MovementFilter struct {
	ProductID       string
	Type            string
	From            *time.Time
	To              *time.Time
	IncludeReversed bool
}

// Empty indica que el caller no pasó ningún filtro (aplica "solo hoy").
func (f MovementFilter) Empty() bool {
	return f.ProductID == "" && f.Type == "" && f.From == nil && f.To == nil
}

// MovementRepository define el puerto de persistencia para StockMovement.
// No hay Delete: las reversas se guardan con Update (borrado lógico).
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	Update(movement *entity.StockMovement) error
	// Search ordena por fecha de movimiento descendente.
	Search(filter MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)
}
