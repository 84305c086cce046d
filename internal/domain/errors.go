package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateName     = errors.New("nombre de producto duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// NotFoundError identifica qué entidad y qué id no se encontró.
// errors.Is(err, ErrNotFound) sigue funcionando para el mapeo HTTP.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado con id: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateNameError colisión de nombre de producto (comparación sin mayúsculas).
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("ya existe un producto con el nombre: %s", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// InsufficientStockError un ajuste dejaría el stock en negativo.
// El mensaje siempre incluye el stock disponible y lo solicitado.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("el stock disponible (%d) es insuficiente para el producto %s: se solicitaron %d unidades",
		e.Available, e.ProductName, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
