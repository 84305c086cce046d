package dto

import "github.com/shopspring/decimal"

// ProductFilterOption producto resumido para los selectores de la UI.
type ProductFilterOption struct {
	ID        string          `json:"id"`
	Name      string          `json:"nombre"`
	SalePrice decimal.Decimal `json:"precioVenta"`
}

// FiltersResponse datos para poblar los filtros de la UI en una llamada.
type FiltersResponse struct {
	Products   []ProductFilterOption `json:"productos"`
	Categories []string              `json:"categorias"`
}
