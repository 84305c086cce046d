package dto

import "time"

// MovementSearchQuery filtros de GET /api/movimientos.
// Fechas en formato YYYY-MM-DD; sin filtros se listan solo los de hoy.
type MovementSearchQuery struct {
	PageRequest
	ProductID       string `query:"productoId"`
	Type            string `query:"tipo"`
	From            string `query:"desde"`
	To              string `query:"hasta"`
	IncludeReversed bool   `query:"incluirRevertidos"`
}

// UpdateMovementRequest body para PUT /api/movimientos/:id.
type UpdateMovementRequest struct {
	Quantity int    `json:"cantidad" validate:"required"`
	Note     string `json:"observacion"`
}

// MovementResponse vista pública de un movimiento.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productoId"`
	Quantity  int       `json:"cantidad"`
	Type      string    `json:"tipo"`
	Note      string    `json:"observacion"`
	Reversed  bool      `json:"revertido"`
	CreatedAt time.Time `json:"fechaMovimiento"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
