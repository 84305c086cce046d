// Package ledger implementa el libro de movimientos de stock: registro de
// ingresos, corrección (amend) y reversa con borrado lógico. Toda mutación
// de stock pasa por stock.Adjust dentro de una transacción.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/domain"
	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
	"github.com/papeleria/papeleria-api/internal/domain/stock"
)

// UseCase casos de uso sobre el libro de movimientos.
type UseCase struct {
	tx        repository.TxRunner
	movements repository.MovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, movements repository.MovementRepository) *UseCase {
	return &UseCase{tx: tx, movements: movements}
}

// RegisterReceiptInTx ajusta el stock y persiste el movimiento con el delta
// realmente aplicado, usando los repositorios de la transacción del caller.
// La cantidad no puede ser cero; el signo determina la dirección (hoy los
// ingresos son siempre positivos).
func RegisterReceiptInTx(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	productID string,
	quantity int,
	note string,
) (*entity.StockMovement, error) {
	if quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := stock.Adjust(products, productID, quantity); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  quantity,
		Type:      entity.MovementTypeIngreso,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := movements.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// Amend corrige la cantidad de un movimiento aplicando al producto solo la
// diferencia. Si la cantidad no cambia, solo se actualiza la observación.
func (uc *UseCase) Amend(ctx context.Context, movementID string, quantity int, note string) (*dto.MovementResponse, error) {
	if quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.MovementResponse
	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
		_ repository.SaleRepository,
	) error {
		mov, err := movements.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return &domain.NotFoundError{Entity: "movimiento", ID: movementID}
		}
		if quantity == mov.Quantity {
			mov.Note = note
			if err := movements.Update(mov); err != nil {
				return err
			}
			out = toMovementResponse(mov)
			return nil
		}
		diff := quantity - mov.Quantity
		if _, err := stock.Adjust(products, mov.ProductID, diff); err != nil {
			return err
		}
		mov.Quantity = quantity
		mov.Note = note
		mov.Reversed = false
		if err := movements.Update(mov); err != nil {
			return err
		}
		out = toMovementResponse(mov)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reverse revierte el efecto de un movimiento sobre el stock y lo marca como
// revertido, conservando la fila para auditoría. Revertir un movimiento ya
// revertido solo actualiza la observación (idempotente sobre el stock).
func (uc *UseCase) Reverse(ctx context.Context, movementID string, note string) (*dto.MovementResponse, error) {
	var out *dto.MovementResponse
	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
		_ repository.SaleRepository,
	) error {
		mov, err := movements.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return &domain.NotFoundError{Entity: "movimiento", ID: movementID}
		}
		if mov.Quantity == 0 {
			mov.Note = note
			if err := movements.Update(mov); err != nil {
				return err
			}
			out = toMovementResponse(mov)
			return nil
		}
		// Puede fallar legítimamente si ya se vendió stock por debajo de
		// la cantidad del ingreso que se quiere revertir.
		if _, err := stock.Adjust(products, mov.ProductID, -mov.Quantity); err != nil {
			return err
		}
		mov.Quantity = 0
		mov.Reversed = true
		mov.Note = note
		if err := movements.Update(mov); err != nil {
			return err
		}
		out = toMovementResponse(mov)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search lista movimientos. Sin filtros aplica "solo hoy"; las reversas se
// excluyen salvo que el caller pida incluirlas.
func (uc *UseCase) Search(filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	if filter.Empty() {
		from, to := todayRange()
		filter.From = &from
		filter.To = &to
	}
	list, total, err := uc.movements.Search(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func todayRange() (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)
	return from, to
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Type:      m.Type,
		Note:      m.Note,
		Reversed:  m.Reversed,
		CreatedAt: m.CreatedAt,
	}
}
