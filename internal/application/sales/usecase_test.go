package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papeleria/papeleria-api/internal/application/apptest"
	"github.com/papeleria/papeleria-api/internal/application/catalog"
	"github.com/papeleria/papeleria-api/internal/application/dto"
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
	salesUC   *sales.UseCase
}

func newEnv() *env {
	store := apptest.NewStore()
	tx := apptest.NewTxRunner(store)
	return &env{
		store:     store,
		catalogUC: catalog.NewUseCase(tx, store.Products()),
		salesUC:   sales.NewUseCase(tx, store.Sales()),
	}
}

func (e *env) seedProduct(t *testing.T, name string, salePrice int64, stock int) string {
	t.Helper()
	p, err := e.catalogUC.Create(context.Background(), dto.CreateProductRequest{
		Name:          name,
		PurchasePrice: decimal.NewFromInt(salePrice / 2),
		SalePrice:     decimal.NewFromInt(salePrice),
		Stock:         stock,
	})
	require.NoError(t, err)
	return p.ID
}

func (e *env) productStock(t *testing.T, id string) int {
	t.Helper()
	p, err := e.store.Products().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DebitaStockYCongelaPrecio(t *testing.T) {
	e := newEnv()
	cuaderno := e.seedProduct(t, "Cuaderno", 6000, 40)
	lapicero := e.seedProduct(t, "Lapicero", 1500, 100)

	out, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines: []dto.SaleLineRequest{
			{ProductID: cuaderno, Quantity: 2},
			{ProductID: lapicero, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusActive, out.Status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(2*6000+3*1500)), "total = Σ subtotales")
	require.Len(t, out.Lines, 2)
	assert.True(t, out.Lines[0].UnitPrice.Equal(decimal.NewFromInt(6000)), "precio congelado al momento de la venta")
	assert.True(t, out.Lines[0].Subtotal.Equal(decimal.NewFromInt(12000)))

	assert.Equal(t, 38, e.productStock(t, cuaderno))
	assert.Equal(t, 97, e.productStock(t, lapicero))
}

// Si un renglón no alcanza, la venta completa se rechaza y ningún producto
// queda debitado, ni siquiera los de renglones anteriores.
func TestCreate_AtomicaSiUnRenglonFalla(t *testing.T) {
	e := newEnv()
	a := e.seedProduct(t, "Producto A", 1000, 50)
	b := e.seedProduct(t, "Producto B", 1000, 50)
	c := e.seedProduct(t, "Producto C", 1000, 2)

	_, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines: []dto.SaleLineRequest{
			{ProductID: a, Quantity: 10},
			{ProductID: b, Quantity: 10},
			{ProductID: c, Quantity: 5},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Producto C", "el error nombra el producto culpable")

	assert.Equal(t, 50, e.productStock(t, a))
	assert.Equal(t, 50, e.productStock(t, b))
	assert.Equal(t, 2, e.productStock(t, c))

	ventas, _, err := e.store.Sales().Search(repository.SaleFilter{IncludeVoided: true}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, ventas, "no queda ninguna venta persistida")
}

func TestCreate_PuedeVaciarElStock(t *testing.T) {
	e := newEnv()
	p := e.seedProduct(t, "Producto", 1000, 5)

	_, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, e.productStock(t, p))
}

func TestCreate_Validaciones(t *testing.T) {
	e := newEnv()
	p := e.seedProduct(t, "Producto", 1000, 5)

	_, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: " ",
		Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método de pago en blanco")

	_, err = e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin renglones")

	_, err = e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

// La edición repone primero el stock anterior y debita el nuevo, así un
// renglón puede conservar (o reducir) su propia cantidad aunque el stock
// restante sea cero.
func TestUpdate_PuedeConservarSuPropiaCantidad(t *testing.T) {
	e := newEnv()
	p := e.seedProduct(t, "Producto", 1000, 5)

	out, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 5}},
	})
	require.NoError(t, err)
	require.Equal(t, 0, e.productStock(t, p))

	updated, err := e.salesUC.Update(context.Background(), out.ID, dto.UpdateSaleRequest{
		PaymentMethod: "TARJETA",
		Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, "TARJETA", updated.PaymentMethod)
	assert.Equal(t, 0, e.productStock(t, p), "misma cantidad, mismo stock final")
}

// Los renglones editados se recotizan al precio vigente, no al congelado en
// la venta original.
func TestUpdate_RecotizaAlPrecioActual(t *testing.T) {
	e := newEnv()
	p := e.seedProduct(t, "Producto", 500, 20)

	out, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 2}},
	})
	require.NoError(t, err)
	require.True(t, out.Total.Equal(decimal.NewFromInt(1000)))

	newPrice := decimal.NewFromInt(600)
	_, err = e.catalogUC.Update(context.Background(), p, dto.UpdateProductRequest{SalePrice: &newPrice})
	require.NoError(t, err)

	updated, err := e.salesUC.Update(context.Background(), out.ID, dto.UpdateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(1800)), "3 × precio actual (600)")
	assert.True(t, updated.Lines[0].UnitPrice.Equal(newPrice))
	assert.Equal(t, 17, e.productStock(t, p), "20 iniciales − 3 del renglón nuevo")
}

// Si un renglón nuevo no alcanza, la reposición previa también se revierte.
func TestUpdate_AtomicaSiElReemplazoFalla(t *testing.T) {
	e := newEnv()
	a := e.seedProduct(t, "Producto A", 1000, 10)
	b := e.seedProduct(t, "Producto B", 1000, 2)

	out, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: a, Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, 6, e.productStock(t, a))

	_, err = e.salesUC.Update(context.Background(), out.ID, dto.UpdateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines: []dto.SaleLineRequest{
			{ProductID: a, Quantity: 2},
			{ProductID: b, Quantity: 5},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 6, e.productStock(t, a), "la reposición intermedia se revirtió")
	assert.Equal(t, 2, e.productStock(t, b))

	kept, err := e.salesUC.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, kept.Total.Equal(decimal.NewFromInt(4000)), "la venta original queda intacta")
	require.Len(t, kept.Lines, 1)
	assert.Equal(t, 4, kept.Lines[0].Quantity)
}

func TestUpdate_VentaAnuladaNoSeEdita(t *testing.T) {
	e := newEnv()
	p := e.seedProduct(t, "Producto", 1000, 10)

	out, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, e.salesUC.Delete(context.Background(), out.ID))

	_, err = e.salesUC.Update(context.Background(), out.ID, dto.UpdateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete (anulación)
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ReponeStockYConservaLaCabecera(t *testing.T) {
	e := newEnv()
	a := e.seedProduct(t, "Producto A", 1000, 10)
	b := e.seedProduct(t, "Producto B", 2000, 10)

	out, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines: []dto.SaleLineRequest{
			{ProductID: a, Quantity: 3},
			{ProductID: b, Quantity: 4},
		},
	})
	require.NoError(t, err)

	require.NoError(t, e.salesUC.Delete(context.Background(), out.ID))

	assert.Equal(t, 10, e.productStock(t, a), "todo el stock repuesto")
	assert.Equal(t, 10, e.productStock(t, b))

	kept, err := e.salesUC.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusVoided, kept.Status)
	assert.True(t, kept.Total.IsZero())
	assert.Empty(t, kept.Lines)
}

func TestDelete_VentaInexistente(t *testing.T) {
	e := newEnv()
	err := e.salesUC.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / SearchLines
// ──────────────────────────────────────────────────────────────────────────────

// El total general acumula todas las ventas que cumplen el filtro, no solo
// las de la página visible; las anuladas quedan fuera salvo petición.
func TestList_TotalGeneralYAnuladasFuera(t *testing.T) {
	e := newEnv()
	p := e.seedProduct(t, "Producto", 1000, 100)

	var voidedID string
	for i := 0; i < 3; i++ {
		out, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
			PaymentMethod: "EFECTIVO",
			Lines:         []dto.SaleLineRequest{{ProductID: p, Quantity: 2}},
		})
		require.NoError(t, err)
		voidedID = out.ID
	}
	require.NoError(t, e.salesUC.Delete(context.Background(), voidedID))

	out, err := e.salesUC.List(context.Background(), repository.SaleFilter{}, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1, "paginado")
	assert.Equal(t, 2, out.Page.Total, "la anulada no cuenta")
	assert.True(t, out.GrandTotal.Equal(decimal.NewFromInt(4000)), "total de las 2 activas completas")

	all, err := e.salesUC.List(context.Background(), repository.SaleFilter{IncludeVoided: true}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Page.Total)
}

func TestSearchLines_PorNombreDeProducto(t *testing.T) {
	e := newEnv()
	cuaderno := e.seedProduct(t, "Cuaderno argollado", 6000, 50)
	lapicero := e.seedProduct(t, "Lapicero", 1500, 50)

	_, err := e.salesUC.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines: []dto.SaleLineRequest{
			{ProductID: cuaderno, Quantity: 1},
			{ProductID: lapicero, Quantity: 2},
		},
	})
	require.NoError(t, err)

	out, err := e.salesUC.SearchLines(context.Background(), repository.SaleLineFilter{ProductName: "cuaderno"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Cuaderno argollado", out.Items[0].ProductName)
	assert.Equal(t, 1, out.Items[0].Quantity)
}
