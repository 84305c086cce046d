package repository

import "context"

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Si fn devuelve error se hace
// Rollback completo: ningún delta de stock parcial queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products ProductRepository,
		movements MovementRepository,
		sales SaleRepository,
	) error) error
}
