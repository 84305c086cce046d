package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papeleria/papeleria-api/internal/application/apptest"
	"github.com/papeleria/papeleria-api/internal/domain"
	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/stock"
)

func seedProduct(t *testing.T, store *apptest.Store, id string, stockQty int) {
	t.Helper()
	err := store.Products().Create(&entity.Product{
		ID:        id,
		Name:      "Producto " + id,
		SalePrice: decimal.NewFromInt(1000),
		Stock:     stockQty,
		Active:    true,
	})
	require.NoError(t, err)
}

func TestAdjust_SumaYResta(t *testing.T) {
	store := apptest.NewStore()
	seedProduct(t, store, "p1", 10)

	p, err := stock.Adjust(store.Products(), "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 15, p.Stock)

	p, err = stock.Adjust(store.Products(), "p1", -15)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock, "el stock puede llegar exactamente a cero")
}

// El invariante central: ningún ajuste puede dejar el stock en negativo.
func TestAdjust_RechazaStockNegativo(t *testing.T) {
	store := apptest.NewStore()
	seedProduct(t, store, "p1", 3)

	_, err := stock.Adjust(store.Products(), "p1", -4)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "(3)", "el mensaje debe incluir el stock disponible")
	assert.Contains(t, err.Error(), "4 unidades", "el mensaje debe incluir lo solicitado")

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock, "un ajuste rechazado no debe tocar el stock")
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	store := apptest.NewStore()

	_, err := stock.Adjust(store.Products(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
