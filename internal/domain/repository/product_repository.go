package repository

import (
	"github.com/shopspring/decimal"

	"github.com/papeleria/papeleria-api/internal/domain/entity"
)

// ProductFilter filtros explícitos para el listado de productos.
// Los predicados se combinan con AND; un campo en cero no filtra.
type ProductFilter struct {
	Name     string // contiene, sin mayúsculas
	Category string
	Active   *bool // nil = solo activos (política del listado)
}

// ProductRef par id/nombre/precio para poblar filtros de la UI.
type ProductRef struct {
	ID        string
	Name      string
	SalePrice decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock existen solo para el punto único de ajuste de
// stock (stock.Adjust); ningún otro código debe escribir Stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByName busca por nombre normalizado, sin distinguir mayúsculas.
	GetByName(name string) (*entity.Product, error)
	// Update persiste todos los campos editables; no toca Stock.
	Update(product *entity.Product) error
	// GetForUpdate lee el producto bloqueando su fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock escribe el valor absoluto de stock ya validado.
	UpdateStock(id string, stock int) error
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	ListByIDs(ids []string) ([]*entity.Product, error)
	ListByStockLessEq(threshold int) ([]*entity.Product, error)
	ListRefs() ([]ProductRef, error)
	DistinctCategories() ([]string, error)
}
