package entity

import "time"

// Tipos de movimiento de stock. Hoy solo existen ingresos; el campo queda
// abierto a nuevos tipos (salida manual, merma) sin cambiar el esquema.
const (
	MovementTypeIngreso = "INGRESO"
)

// StockMovement es una entrada del libro de movimientos: registra el delta
// realmente aplicado al stock de un producto fuera de una venta.
//
// La reversa es un borrado lógico: Quantity pasa a 0 y Reversed a true,
// pero la fila se conserva para la auditoría. Reversed distingue una
// reversa de una cantidad legítimamente cero.
type StockMovement struct {
	ID        string
	ProductID string // inmutable después de la creación
	Quantity  int    // delta aplicado; 0 si el movimiento fue revertido
	Type      string
	Note      string
	Reversed  bool
	CreatedAt time.Time // se fija una sola vez
}
