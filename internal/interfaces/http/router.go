package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/papeleria/papeleria-api/internal/application/catalog"
	"github.com/papeleria/papeleria-api/internal/application/expense"
	"github.com/papeleria/papeleria-api/internal/application/filters"
	"github.com/papeleria/papeleria-api/internal/application/ledger"
	"github.com/papeleria/papeleria-api/internal/application/report"
	"github.com/papeleria/papeleria-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	LedgerUC  *ledger.UseCase
	SalesUC   *sales.UseCase
	ExpenseUC *expense.UseCase
	ReportUC  *report.UseCase
	FiltersUC *filters.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Productos
	productos := api.Group("/productos")
	productHandler := NewProductHandler(deps.CatalogUC)
	productos.Post("/", productHandler.Create)
	productos.Get("/", productHandler.List)
	productos.Patch("/agregar-masivo", productHandler.AddStockBulk)
	productos.Get("/:id", productHandler.GetByID)
	productos.Put("/:id", productHandler.Update)
	productos.Patch("/:id/estado", productHandler.ToggleActive)
	productos.Patch("/:id/agregar", productHandler.AddStock)

	// Movimientos de stock
	movimientos := api.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movimientos.Get("/", movementHandler.Search)
	movimientos.Put("/:id", movementHandler.Amend)
	movimientos.Delete("/:id", movementHandler.Reverse)

	// Ventas
	ventas := api.Group("/ventas")
	saleHandler := NewSaleHandler(deps.SalesUC)
	ventas.Post("/", saleHandler.Create)
	ventas.Get("/", saleHandler.List)
	ventas.Get("/detalles", saleHandler.SearchLines)
	ventas.Get("/:id", saleHandler.GetByID)
	ventas.Put("/:id", saleHandler.Update)
	ventas.Delete("/:id", saleHandler.Delete)
	ventas.Get("/:id/detalles", saleHandler.Lines)

	// Gastos
	gastos := api.Group("/gastos")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	gastos.Post("/", expenseHandler.Create)
	gastos.Get("/", expenseHandler.List)
	gastos.Get("/:id", expenseHandler.GetByID)
	gastos.Put("/:id", expenseHandler.Update)
	gastos.Delete("/:id", expenseHandler.Delete)

	// Reportes
	reportes := api.Group("/reportes")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportes.Get("/generales", reportHandler.General)
	reportes.Get("/generales/pdf", reportHandler.GeneralPDF)
	reportes.Get("/stock-bajo", reportHandler.LowStock)

	// Filtros de la UI
	filterHandler := NewFilterHandler(deps.FiltersUC)
	api.Get("/filtros", filterHandler.Get)
}
