// Package apptest provee dobles de prueba en memoria para los puertos de
// persistencia. El TxRunner toma una instantánea del estado antes de
// ejecutar el callback y la restaura si este falla, de modo que los tests
// de atomicidad ejercitan un rollback real y no uno simulado.
package apptest

import (
	"context"
	"strings"
	"sync"

	"github.com/papeleria/papeleria-api/internal/domain/entity"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// Store estado en memoria compartido por todos los repositorios de prueba.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements map[string]*entity.StockMovement
	sales     map[string]*entity.Sale
	expenses  map[string]*entity.Expense
	seq       int // orden de inserción para desempates estables
	order     map[string]int
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		movements: make(map[string]*entity.StockMovement),
		sales:     make(map[string]*entity.Sale),
		expenses:  make(map[string]*entity.Expense),
		order:     make(map[string]int),
	}
}

// Products devuelve el doble de ProductRepository.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// Movements devuelve el doble de MovementRepository.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s} }

// Sales devuelve el doble de SaleRepository.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{s} }

// Expenses devuelve el doble de ExpenseRepository.
func (s *Store) Expenses() repository.ExpenseRepository { return &expenseRepo{s} }

// Reports devuelve el doble de ReportRepository, que calcula los agregados
// sobre el mismo estado en memoria.
func (s *Store) Reports() repository.ReportRepository { return &reportRepo{s} }

func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

// ── snapshot / restore ───────────────────────────────────────────────────────

type snapshot struct {
	products  map[string]*entity.Product
	movements map[string]*entity.StockMovement
	sales     map[string]*entity.Sale
	expenses  map[string]*entity.Expense
	seq       int
	order     map[string]int
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]*entity.Product, len(s.products)),
		movements: make(map[string]*entity.StockMovement, len(s.movements)),
		sales:     make(map[string]*entity.Sale, len(s.sales)),
		expenses:  make(map[string]*entity.Expense, len(s.expenses)),
		seq:       s.seq,
		order:     make(map[string]int, len(s.order)),
	}
	for id, p := range s.products {
		snap.products[id] = copyProduct(p)
	}
	for id, m := range s.movements {
		snap.movements[id] = copyMovement(m)
	}
	for id, v := range s.sales {
		snap.sales[id] = copySale(v)
	}
	for id, e := range s.expenses {
		snap.expenses[id] = copyExpense(e)
	}
	for id, n := range s.order {
		snap.order[id] = n
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.sales = snap.sales
	s.expenses = snap.expenses
	s.seq = snap.seq
	s.order = snap.order
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	c := *m
	return &c
}

func copySale(v *entity.Sale) *entity.Sale {
	c := *v
	c.Lines = append([]entity.SaleLine(nil), v.Lines...)
	return &c
}

func copyExpense(e *entity.Expense) *entity.Expense {
	c := *e
	return &c
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// TxRunner implementación en memoria de repository.TxRunner con rollback
// por instantánea.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner { return &TxRunner{store: store} }

// Run ejecuta fn; si devuelve error, restaura el estado previo completo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	sales repository.SaleRepository,
) error) error {
	snap := r.store.snapshot()
	if err := fn(r.store.Products(), r.store.Movements(), r.store.Sales()); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// ── helpers de filtrado ──────────────────────────────────────────────────────

func foldContains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
