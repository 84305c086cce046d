// seed puebla la base de datos con datos de demostración: un catálogo de
// papelería con stock inicial, una venta de ejemplo y un gasto. Los
// productos que ya existen (por nombre) se omiten, así el comando puede
// ejecutarse varias veces sin duplicar nada.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/papeleria/papeleria-api/internal/application/catalog"
	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/application/expense"
	"github.com/papeleria/papeleria-api/internal/application/sales"
	"github.com/papeleria/papeleria-api/internal/domain"
	"github.com/papeleria/papeleria-api/internal/infrastructure/postgres"
	"github.com/papeleria/papeleria-api/pkg/config"
	"github.com/papeleria/papeleria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(txRunner, productRepo)
	salesUC := sales.NewUseCase(txRunner, saleRepo)
	expenseUC := expense.NewUseCase(expenseRepo)

	products := []dto.CreateProductRequest{
		{Name: "Cuaderno argollado 100 hojas", Description: "Cuaderno argollado tapa dura", PurchasePrice: dec(3500), SalePrice: dec(6000), Stock: 40, Category: "Cuadernos"},
		{Name: "Lapicero negro BIC", Description: "Lapicero tinta negra punta media", PurchasePrice: dec(800), SalePrice: dec(1500), Stock: 120, Category: "Escritura"},
		{Name: "Lápiz HB Mirado", Description: "Lápiz de grafito número 2", PurchasePrice: dec(500), SalePrice: dec(1000), Stock: 100, Category: "Escritura"},
		{Name: "Borrador de nata", Description: "Borrador blanco grande", PurchasePrice: dec(300), SalePrice: dec(700), Stock: 80, Category: "Escritura"},
		{Name: "Resma papel carta", Description: "Resma 500 hojas 75 g", PurchasePrice: dec(12000), SalePrice: dec(18000), Stock: 25, Category: "Papel"},
		{Name: "Cartulina blanca pliego", Description: "Pliego de cartulina 70x100", PurchasePrice: dec(600), SalePrice: dec(1200), Stock: 60, Category: "Papel"},
		{Name: "Pegante en barra 21 g", Description: "Barra adhesiva escolar", PurchasePrice: dec(1800), SalePrice: dec(3500), Stock: 50, Category: "Adhesivos"},
		{Name: "Tijeras escolares", Description: "Tijeras punta roma 13 cm", PurchasePrice: dec(2000), SalePrice: dec(4000), Stock: 30, Category: "Útiles"},
		{Name: "Caja de colores x12", Description: "Colores de madera doble punta", PurchasePrice: dec(8000), SalePrice: dec(14000), Stock: 20, Category: "Arte"},
		{Name: "Marcador borrable", Description: "Marcador para tablero acrílico", PurchasePrice: dec(1500), SalePrice: dec(3000), Stock: 45, Category: "Escritura"},
	}

	ids := make(map[string]string, len(products))
	created := 0
	for _, in := range products {
		p, err := catalogUC.Create(ctx, in)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateName) {
				log.Debug().Str("nombre", in.Name).Msg("producto ya existe, omitido")
				continue
			}
			log.Fatal().Err(err).Str("nombre", in.Name).Msg("crear producto")
		}
		ids[in.Name] = p.ID
		created++
	}
	log.Info().Int("creados", created).Msg("catálogo sembrado")

	// Venta y gasto de ejemplo solo en la primera corrida.
	if created == 0 {
		log.Info().Msg("nada nuevo que sembrar")
		return
	}

	sale, err := salesUC.Create(ctx, dto.CreateSaleRequest{
		PaymentMethod: "EFECTIVO",
		Lines: []dto.SaleLineRequest{
			{ProductID: ids["Cuaderno argollado 100 hojas"], Quantity: 2},
			{ProductID: ids["Lapicero negro BIC"], Quantity: 3},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear venta de ejemplo")
	}
	log.Info().Str("id", sale.ID).Str("total", sale.Total.String()).Msg("venta de ejemplo creada")

	if _, err := expenseUC.Create(ctx, dto.CreateExpenseRequest{
		Amount:      dec(15000),
		Description: "Bolsas de empaque",
	}); err != nil {
		log.Fatal().Err(err).Msg("crear gasto de ejemplo")
	}
	log.Info().Msg("datos de demostración listos")
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
