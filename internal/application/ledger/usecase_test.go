package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papeleria/papeleria-api/internal/application/apptest"
	"github.com/papeleria/papeleria-api/internal/application/catalog"
	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/application/ledger"
	"github.com/papeleria/papeleria-api/internal/application/sales"
	"github.com/papeleria/papeleria-api/internal/domain"
	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	store     *apptest.Store
	catalogUC *catalog.UseCase
	ledgerUC  *ledger.UseCase
	salesUC   *sales.UseCase
}

func newEnv() *env {
	store := apptest.NewStore()
	tx := apptest.NewTxRunner(store)
	return &env{
		store:     store,
		catalogUC: catalog.NewUseCase(tx, store.Products()),
		ledgerUC:  ledger.NewUseCase(tx, store.Movements()),
		salesUC:   sales.NewUseCase(tx, store.Sales()),
	}
}

// seedWithReceipt crea un producto con stock inicial y devuelve el producto
// junto al movimiento INGRESO que lo respalda.
func (e *env) seedWithReceipt(t *testing.T, name string, stock int) (*dto.ProductResponse, *entity.StockMovement) {
	t.Helper()
	p, err := e.catalogUC.Create(context.Background(), dto.CreateProductRequest{
		Name:          name,
		PurchasePrice: decimal.NewFromInt(500),
		SalePrice:     decimal.NewFromInt(1000),
		Stock:         stock,
	})
	require.NoError(t, err)
	movs, _, err := e.store.Movements().Search(repository.MovementFilter{ProductID: p.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	return p, movs[0]
}

func (e *env) productStock(t *testing.T, id string) int {
	t.Helper()
	p, err := e.store.Products().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Amend
// ──────────────────────────────────────────────────────────────────────────────

// Corregir un ingreso de 25 a 10 debe aplicar al producto solo la
// diferencia (−15), no la cantidad completa.
func TestAmend_AplicaSoloLaDiferencia(t *testing.T) {
	e := newEnv()
	p, mov := e.seedWithReceipt(t, "Cuaderno", 25)

	out, err := e.ledgerUC.Amend(context.Background(), mov.ID, 10, "conteo corregido")
	require.NoError(t, err)
	assert.Equal(t, 10, out.Quantity)
	assert.Equal(t, "conteo corregido", out.Note)
	assert.False(t, out.Reversed)
	assert.Equal(t, 10, e.productStock(t, p.ID))
}

func TestAmend_AumentarCantidad(t *testing.T) {
	e := newEnv()
	p, mov := e.seedWithReceipt(t, "Cuaderno", 10)

	out, err := e.ledgerUC.Amend(context.Background(), mov.ID, 18, "")
	require.NoError(t, err)
	assert.Equal(t, 18, out.Quantity)
	assert.Equal(t, 18, e.productStock(t, p.ID))
}

// Si la cantidad no cambia, la corrección es solo documental.
func TestAmend_MismaCantidadSoloActualizaNota(t *testing.T) {
	e := newEnv()
	p, mov := e.seedWithReceipt(t, "Cuaderno", 25)

	out, err := e.ledgerUC.Amend(context.Background(), mov.ID, 25, "nota nueva")
	require.NoError(t, err)
	assert.Equal(t, 25, out.Quantity)
	assert.Equal(t, "nota nueva", out.Note)
	assert.Equal(t, 25, e.productStock(t, p.ID))
}

func TestAmend_CantidadCeroInvalida(t *testing.T) {
	e := newEnv()
	_, mov := e.seedWithReceipt(t, "Cuaderno", 25)

	_, err := e.ledgerUC.Amend(context.Background(), mov.ID, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la reversa tiene su propia operación")
}

func TestAmend_MovimientoInexistente(t *testing.T) {
	e := newEnv()
	_, err := e.ledgerUC.Amend(context.Background(), "no-existe", 5, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una corrección a la baja no puede dejar el stock en negativo si parte del
// ingreso ya se vendió.
func TestAmend_FallaSiElStockYaSeVendio(t *testing.T) {
	e := newEnv()
	p, mov := e.seedWithReceipt(t, "Cuaderno", 20)

	_, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 15}},
	})
	require.NoError(t, err)
	require.Equal(t, 5, e.productStock(t, p.ID))

	// Corregir de 20 a 3 pediría un delta de −17 con solo 5 disponibles.
	_, err = e.ledgerUC.Amend(context.Background(), mov.ID, 3, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, e.productStock(t, p.ID), "el fallo no toca el stock")

	kept, err := e.store.Movements().GetByID(mov.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, kept.Quantity, "el movimiento queda intacto tras el fallo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reverse
// ──────────────────────────────────────────────────────────────────────────────

// La reversa deshace el efecto sobre el stock pero conserva la fila como
// evidencia, con cantidad 0 y la marca de revertido.
func TestReverse_DevuelveStockYConservaLaFila(t *testing.T) {
	e := newEnv()
	p, mov := e.seedWithReceipt(t, "Cuaderno", 25)

	out, err := e.ledgerUC.Reverse(context.Background(), mov.ID, "ingreso por error")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Quantity)
	assert.True(t, out.Reversed)
	assert.Equal(t, "ingreso por error", out.Note)
	assert.Equal(t, 0, e.productStock(t, p.ID))

	// Sigue direccionable por id aunque no aparezca en listados normales.
	kept, err := e.store.Movements().GetByID(mov.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.Reversed)
}

func TestReverse_Idempotente(t *testing.T) {
	e := newEnv()
	p, mov := e.seedWithReceipt(t, "Cuaderno", 25)

	_, err := e.ledgerUC.Reverse(context.Background(), mov.ID, "primera")
	require.NoError(t, err)
	out, err := e.ledgerUC.Reverse(context.Background(), mov.ID, "segunda")
	require.NoError(t, err, "revertir dos veces no es un error")
	assert.Equal(t, 0, out.Quantity)
	assert.Equal(t, "segunda", out.Note)
	assert.Equal(t, 0, e.productStock(t, p.ID), "el stock solo se devuelve una vez")
}

func TestReverse_FallaSiElStockYaSeVendio(t *testing.T) {
	e := newEnv()
	p, mov := e.seedWithReceipt(t, "Cuaderno", 10)

	_, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 8}},
	})
	require.NoError(t, err)

	_, err = e.ledgerUC.Reverse(context.Background(), mov.ID, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, e.productStock(t, p.ID))

	kept, err := e.store.Movements().GetByID(mov.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, kept.Quantity)
	assert.False(t, kept.Reversed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Search
// ──────────────────────────────────────────────────────────────────────────────

// Las reversas no ensucian el historial visible salvo petición explícita.
func TestSearch_ExcluyeReversasPorDefecto(t *testing.T) {
	e := newEnv()
	p, mov := e.seedWithReceipt(t, "Cuaderno", 25)
	e.seedWithReceipt(t, "Lapicero", 10)

	_, err := e.ledgerUC.Reverse(context.Background(), mov.ID, "")
	require.NoError(t, err)

	out, err := e.ledgerUC.Search(repository.MovementFilter{ProductID: p.ID}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	out, err = e.ledgerUC.Search(repository.MovementFilter{ProductID: p.ID, IncludeReversed: true}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Reversed)
}

// Corregir un movimiento revertido lo "revive": vuelve a contar y a listarse.
func TestAmend_ReviveUnMovimientoRevertido(t *testing.T) {
	e := newEnv()
	p, mov := e.seedWithReceipt(t, "Cuaderno", 25)

	_, err := e.ledgerUC.Reverse(context.Background(), mov.ID, "")
	require.NoError(t, err)
	require.Equal(t, 0, e.productStock(t, p.ID))

	out, err := e.ledgerUC.Amend(context.Background(), mov.ID, 12, "recontado")
	require.NoError(t, err)
	assert.False(t, out.Reversed)
	assert.Equal(t, 12, e.productStock(t, p.ID))

	listed, err := e.ledgerUC.Search(repository.MovementFilter{ProductID: p.ID}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, listed.Items, 1)
}
