// Package stock contiene el punto único de ajuste del stock de productos
// (servicio de dominio). Todo mutador de alto nivel — movimientos, ventas,
// ingresos masivos — pasa por Adjust; ningún otro código escribe Stock.
package stock

import (
	"github.com/papeleria/papeleria-api/internal/domain"
	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// Adjust lee el producto bloqueando su fila, calcula stock + delta y lo
// persiste. Devuelve InsufficientStockError si el resultado sería negativo
// y NotFoundError si el producto no existe. Debe llamarse dentro de una
// transacción: el bloqueo de fila serializa mutadores concurrentes sobre el
// mismo producto.
func Adjust(products repository.ProductRepository, productID string, delta int) (*entity.Product, error) {
	p, err := products.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: productID}
	}
	newStock := p.Stock + delta
	if newStock < 0 {
		return nil, &domain.InsufficientStockError{
			ProductName: p.Name,
			Available:   p.Stock,
			Requested:   -delta,
		}
	}
	if err := products.UpdateStock(p.ID, newStock); err != nil {
		return nil, err
	}
	p.Stock = newStock
	return p, nil
}
