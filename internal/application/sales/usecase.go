// Package sales implementa el ciclo de vida de una venta: creación con
// débito atómico de stock, edición con reconciliación y anulación con
// devolución de stock. Una venta anulada conserva su fila (borrado lógico)
// y no admite más transiciones.
package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/domain"
	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
	"github.com/papeleria/papeleria-api/internal/domain/stock"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	tx    repository.TxRunner
	sales repository.SaleRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, sales repository.SaleRepository) *UseCase {
	return &UseCase{tx: tx, sales: sales}
}

// Create registra una venta debitando el stock de todos los renglones en una
// sola transacción: si un renglón falla, ningún producto queda tocado.
// El precio unitario se congela al precio de venta vigente del producto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if strings.TrimSpace(in.PaymentMethod) == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		Date:          time.Now(),
		PaymentMethod: in.PaymentMethod,
		Status:        entity.SaleStatusActive,
	}
	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		_ repository.MovementRepository,
		sales repository.SaleRepository,
	) error {
		total := decimal.Zero
		for _, line := range in.Lines {
			if line.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			// Adjust bloquea la fila, valida stock >= cantidad y debita.
			p, err := stock.Adjust(products, line.ProductID, -line.Quantity)
			if err != nil {
				return err
			}
			subtotal := p.SalePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			sale.Lines = append(sale.Lines, entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: p.ID,
				Quantity:  line.Quantity,
				UnitPrice: p.SalePrice,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)
		}
		sale.Total = total
		return sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, true), nil
}

// Update reemplaza todos los renglones de la venta: primero devuelve al
// stock las cantidades anteriores, luego valida y debita los renglones
// nuevos contra el stock ya repuesto (un renglón puede "conservar" su propia
// cantidad), recotizando al precio actual del producto. Todo en una
// transacción: si un renglón nuevo falla, la reposición también se revierte.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if strings.TrimSpace(in.PaymentMethod) == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.SaleResponse
	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		_ repository.MovementRepository,
		sales repository.SaleRepository,
	) error {
		sale, err := sales.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return &domain.NotFoundError{Entity: "venta", ID: id}
		}
		if sale.Status == entity.SaleStatusVoided {
			return domain.ErrInvalidInput
		}
		// (a) devolver el stock de los renglones existentes; solo suma,
		// no necesita validación de cota superior.
		for _, old := range sale.Lines {
			if _, err := stock.Adjust(products, old.ProductID, old.Quantity); err != nil {
				return err
			}
		}
		// (b)(c) reemplazar renglones debitando contra el stock repuesto.
		sale.Lines = nil
		total := decimal.Zero
		for _, line := range in.Lines {
			if line.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			p, err := stock.Adjust(products, line.ProductID, -line.Quantity)
			if err != nil {
				return err
			}
			// Recotización: precio actual, no el congelado en la venta
			// original.
			subtotal := p.SalePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			sale.Lines = append(sale.Lines, entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: p.ID,
				Quantity:  line.Quantity,
				UnitPrice: p.SalePrice,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)
		}
		sale.Total = total
		sale.PaymentMethod = in.PaymentMethod
		if err := sales.Update(sale); err != nil {
			return err
		}
		out = toSaleResponse(sale, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete anula la venta: devuelve todas las cantidades al stock, vacía los
// renglones, deja el total en cero y marca la venta como ANULADA. La fila
// sigue direccionable para auditoría.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		_ repository.MovementRepository,
		sales repository.SaleRepository,
	) error {
		sale, err := sales.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return &domain.NotFoundError{Entity: "venta", ID: id}
		}
		for _, line := range sale.Lines {
			if _, err := stock.Adjust(products, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		sale.Lines = nil
		sale.Total = decimal.Zero
		sale.Status = entity.SaleStatusVoided
		return sales.Update(sale)
	})
}

// GetByID devuelve la venta con sus renglones.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Entity: "venta", ID: id}
	}
	return toSaleResponse(sale, true), nil
}

// Lines devuelve los renglones de una venta concreta.
func (uc *UseCase) Lines(ctx context.Context, saleID string) ([]dto.SaleLineResponse, error) {
	sale, err := uc.sales.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Entity: "venta", ID: saleID}
	}
	out := make([]dto.SaleLineResponse, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		out = append(out, toSaleLineResponse(l))
	}
	return out, nil
}

// List lista ventas con filtros más el total acumulado del filtro completo.
// Sin rango de fechas se listan solo las de hoy; las anuladas quedan fuera
// salvo petición explícita.
func (uc *UseCase) List(ctx context.Context, filter repository.SaleFilter, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	if filter.Empty() {
		from, to := todayRange()
		filter.From = &from
		filter.To = &to
	}
	list, total, err := uc.sales.Search(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	grandTotal, err := uc.sales.SumTotal(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, false))
	}
	return &dto.SaleListResponse{
		Items:      items,
		GrandTotal: grandTotal,
		Page:       dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// SearchLines busca renglones por nombre de producto y rango de fecha de la
// venta; sin fechas aplica "solo hoy".
func (uc *UseCase) SearchLines(ctx context.Context, filter repository.SaleLineFilter, page dto.PageRequest) (*dto.SaleLineListResponse, error) {
	page.DefaultPage()
	if filter.From == nil && filter.To == nil {
		from, to := todayRange()
		filter.From = &from
		filter.To = &to
	}
	list, total, err := uc.sales.SearchLines(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleLineResponse, 0, len(list))
	for _, l := range list {
		items = append(items, toSaleLineResponse(*l))
	}
	return &dto.SaleLineListResponse{
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

func toSaleResponse(s *entity.Sale, withLines bool) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		Date:          s.Date,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total,
		Status:        s.Status,
	}
	if withLines {
		for _, l := range s.Lines {
			out.Lines = append(out.Lines, toSaleLineResponse(l))
		}
	}
	return out
}

func toSaleLineResponse(l entity.SaleLine) dto.SaleLineResponse {
	return dto.SaleLineResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Subtotal:    l.Subtotal,
	}
}
