package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/papeleria/papeleria-api/internal/application/filters"
)

// FilterHandler maneja las peticiones HTTP de filtros de la UI.
type FilterHandler struct {
	uc *filters.UseCase
}

// NewFilterHandler construye el handler.
func NewFilterHandler(uc *filters.UseCase) *FilterHandler {
	return &FilterHandler{uc: uc}
}

// Get godoc
// @Summary      Datos para filtros de la UI
// @Description  Devuelve en una sola llamada los productos (id, nombre, precio) y las categorías en uso.
// @Tags         filtros
// @Produce      json
// @Success      200  {object}  dto.FiltersResponse
// @Router       /api/filtros [get]
func (h *FilterHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
