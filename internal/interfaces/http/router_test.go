package http

import (
	"bytes"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papeleria/papeleria-api/internal/application/apptest"
	"github.com/papeleria/papeleria-api/internal/application/catalog"
	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/application/expense"
	"github.com/papeleria/papeleria-api/internal/application/filters"
	"github.com/papeleria/papeleria-api/internal/application/ledger"
	"github.com/papeleria/papeleria-api/internal/application/report"
	"github.com/papeleria/papeleria-api/internal/application/sales"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newApp arma la app Fiber completa contra un almacén en memoria, igual que
// cmd/api pero sin base de datos ni PDF.
func newApp() *fiber.App {
	store := apptest.NewStore()
	tx := apptest.NewTxRunner(store)
	app := fiber.New()
	Router(app, RouterDeps{
		CatalogUC: catalog.NewUseCase(tx, store.Products()),
		LedgerUC:  ledger.NewUseCase(tx, store.Movements()),
		SalesUC:   sales.NewUseCase(tx, store.Sales()),
		ExpenseUC: expense.NewUseCase(store.Expenses()),
		ReportUC:  report.NewUseCase(store.Reports(), store.Products(), nil),
		FiltersUC: filters.NewUseCase(store.Products()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *stdhttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := stdhttp.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *stdhttp.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createProduct(t *testing.T, app *fiber.App, name string, stock int) dto.ProductResponse {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/productos/", fiber.Map{
		"nombre":       name,
		"precioCompra": "800",
		"precioVenta":  "1500",
		"stock":        stock,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_CrearYConsultar(t *testing.T) {
	app := newApp()

	created := createProduct(t, app, "Cuaderno argollado", 15)
	assert.Equal(t, "Cuaderno argollado", created.Name)
	assert.Equal(t, 15, created.Stock)
	assert.True(t, created.Active)

	resp := doJSON(t, app, "GET", "/api/productos/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, created.ID, got.ID)
}

func TestProductos_NombreDuplicadoDa409(t *testing.T) {
	app := newApp()
	createProduct(t, app, "Cuaderno", 5)

	resp := doJSON(t, app, "POST", "/api/productos/", fiber.Map{
		"nombre":      "CUADERNO",
		"precioVenta": "1500",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE_NAME", body.Code)
}

func TestProductos_SinNombreDa400(t *testing.T) {
	app := newApp()
	resp := doJSON(t, app, "POST", "/api/productos/", fiber.Map{"precioVenta": "1500"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProductos_InexistenteDa404(t *testing.T) {
	app := newApp()
	resp := doJSON(t, app, "GET", "/api/productos/no-existe", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

// La ruta estática debe resolverse antes que /:id.
func TestProductos_AgregarMasivoNoChocaConID(t *testing.T) {
	app := newApp()
	a := createProduct(t, app, "Producto A", 10)

	resp := doJSON(t, app, "PATCH", "/api/productos/agregar-masivo", fiber.Map{
		"movimientos": []fiber.Map{
			{"productoId": a.ID, "cantidad": 5},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[[]dto.ProductResponse](t, resp)
	require.Len(t, out, 1)
	assert.Equal(t, 15, out[0].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestVentas_CrearDebitaStock(t *testing.T) {
	app := newApp()
	p := createProduct(t, app, "Lapicero", 10)

	resp := doJSON(t, app, "POST", "/api/ventas/", fiber.Map{
		"metodoPago": "EFECTIVO",
		"detalles": []fiber.Map{
			{"productoId": p.ID, "cantidad": 3},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, "ACTIVA", sale.Status)
	require.Len(t, sale.Lines, 1)

	got := decode[dto.ProductResponse](t, doJSON(t, app, "GET", "/api/productos/"+p.ID, nil))
	assert.Equal(t, 7, got.Stock)
}

func TestVentas_StockInsuficienteDa409(t *testing.T) {
	app := newApp()
	p := createProduct(t, app, "Lapicero", 2)

	resp := doJSON(t, app, "POST", "/api/ventas/", fiber.Map{
		"metodoPago": "EFECTIVO",
		"detalles": []fiber.Map{
			{"productoId": p.ID, "cantidad": 5},
		},
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "Lapicero")
}

func TestVentas_AnularRepone(t *testing.T) {
	app := newApp()
	p := createProduct(t, app, "Lapicero", 10)

	sale := decode[dto.SaleResponse](t, doJSON(t, app, "POST", "/api/ventas/", fiber.Map{
		"metodoPago": "EFECTIVO",
		"detalles":   []fiber.Map{{"productoId": p.ID, "cantidad": 4}},
	}))

	resp := doJSON(t, app, "DELETE", "/api/ventas/"+sale.ID, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	got := decode[dto.ProductResponse](t, doJSON(t, app, "GET", "/api/productos/"+p.ID, nil))
	assert.Equal(t, 10, got.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes y filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestReportes_GeneralesDeHoy(t *testing.T) {
	app := newApp()
	p := createProduct(t, app, "Cuaderno", 30)
	doJSON(t, app, "POST", "/api/ventas/", fiber.Map{
		"metodoPago": "EFECTIVO",
		"detalles":   []fiber.Map{{"productoId": p.ID, "cantidad": 2}},
	})

	resp := doJSON(t, app, "GET", "/api/reportes/generales", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.GeneralReportResponse](t, resp)
	assert.Equal(t, int64(1), out.SaleCount)
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(3000)), "2 × 1500")
}

func TestFiltros_DevuelveProductosYCategorias(t *testing.T) {
	app := newApp()
	createProduct(t, app, "Cuaderno", 5)

	resp := doJSON(t, app, "GET", "/api/filtros", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.FiltersResponse](t, resp)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Cuaderno", out.Products[0].Name)
}
