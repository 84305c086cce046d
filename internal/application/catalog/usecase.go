// Package catalog implementa el catálogo de productos: CRUD, cambio de
// estado, ingreso de stock individual y masivo. El stock inicial y cada
// ingreso quedan registrados en el libro de movimientos dentro de la misma
// transacción que los aplica.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/application/ledger"
	"github.com/papeleria/papeleria-api/internal/domain"
	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// UseCase casos de uso del catálogo de productos.
type UseCase struct {
	tx       repository.TxRunner
	products repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, products repository.ProductRepository) *UseCase {
	return &UseCase{tx: tx, products: products}
}

// NormalizeName recorta espacios y normaliza a NFC para que la unicidad de
// nombres con tildes no dependa de la forma Unicode que envíe el cliente.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Create valida unicidad del nombre (sin mayúsculas), fija fecha de registro
// y estado activo en el servidor, y registra el stock inicial como ingreso.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := NormalizeName(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.products.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.DuplicateNameError{Name: name}
	}

	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   in.Description,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         0,
		Category:      in.Category,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	err = uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
		_ repository.SaleRepository,
	) error {
		if err := products.Create(product); err != nil {
			return err
		}
		// El producto entra con stock 0 y el ingreso inicial pasa por el
		// punto único de ajuste, así el número y el libro siempre coinciden.
		if in.Stock > 0 {
			if _, err := ledger.RegisterReceiptInTx(products, movements, product.ID, in.Stock, "Stock inicial del producto"); err != nil {
				return err
			}
			product.Stock = in.Stock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualización parcial: campos nil no se tocan. Revalida la unicidad
// del nombre contra los demás productos.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: id}
	}
	if in.Name != nil {
		name := NormalizeName(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.products.GetByName(name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, &domain.DuplicateNameError{Name: name}
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ToggleActive invierte el estado del producto. No tiene efecto en cascada
// sobre ventas ni movimientos existentes.
func (uc *UseCase) ToggleActive(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: id}
	}
	product.Active = !product.Active
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// AddStock ingreso individual de stock con su movimiento, en una transacción.
func (uc *UseCase) AddStock(ctx context.Context, id string, quantity int, note string) (*dto.ProductResponse, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
		_ repository.SaleRepository,
	) error {
		if _, err := ledger.RegisterReceiptInTx(products, movements, id, quantity, note); err != nil {
			return err
		}
		p, err := products.GetByID(id)
		if err != nil {
			return err
		}
		out = toProductResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddStockBulk ingreso masivo: todas las entradas se aplican en una sola
// transacción, en el orden recibido. Si una entrada falla, se revierte el
// lote completo, no solo esa entrada.
func (uc *UseCase) AddStockBulk(ctx context.Context, entries []dto.BulkEntry) ([]dto.ProductResponse, error) {
	if len(entries) == 0 {
		return nil, domain.ErrInvalidInput
	}
	ids := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if !seen[e.ProductID] {
			seen[e.ProductID] = true
			ids = append(ids, e.ProductID)
		}
	}

	var out []dto.ProductResponse
	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
		_ repository.SaleRepository,
	) error {
		// Resolución en lote: el error identifica el id ausente.
		found, err := products.ListByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[string]bool, len(found))
		for _, p := range found {
			byID[p.ID] = true
		}
		for _, id := range ids {
			if !byID[id] {
				return &domain.NotFoundError{Entity: "producto", ID: id}
			}
		}
		for _, e := range entries {
			if e.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			if _, err := ledger.RegisterReceiptInTx(products, movements, e.ProductID, e.Quantity, e.Note); err != nil {
				return err
			}
		}
		updated, err := products.ListByIDs(ids)
		if err != nil {
			return err
		}
		out = make([]dto.ProductResponse, 0, len(updated))
		for _, p := range updated {
			out = append(out, *toProductResponse(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene un producto por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: id}
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros. Por defecto solo activos; estado=false
// lista los inactivos.
func (uc *UseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	filter := repository.ProductFilter{
		Name:     strings.TrimSpace(q.Name),
		Category: q.Category,
		Active:   q.Active,
	}
	list, total, err := uc.products.List(filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Stock:         p.Stock,
		Category:      p.Category,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}
