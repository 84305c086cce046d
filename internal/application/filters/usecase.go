// Package filters arma en una sola llamada los datos que la UI necesita
// para poblar sus selectores de filtro (productos y categorías).
package filters

import (
	"context"

	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// UseCase caso de uso de filtros de la UI.
type UseCase struct {
	products repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository) *UseCase {
	return &UseCase{products: products}
}

// Get devuelve el par id/nombre/precio de todos los productos y las
// categorías distintas.
func (uc *UseCase) Get(ctx context.Context) (*dto.FiltersResponse, error) {
	refs, err := uc.products.ListRefs()
	if err != nil {
		return nil, err
	}
	categories, err := uc.products.DistinctCategories()
	if err != nil {
		return nil, err
	}
	options := make([]dto.ProductFilterOption, 0, len(refs))
	for _, r := range refs {
		options = append(options, dto.ProductFilterOption{
			ID:        r.ID,
			Name:      r.Name,
			SalePrice: r.SalePrice,
		})
	}
	return &dto.FiltersResponse{Products: options, Categories: categories}, nil
}
