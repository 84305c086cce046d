package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/application/ledger"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos de stock.
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar movimientos
// @Description  Busca movimientos por producto, tipo y rango de fechas. Sin filtros devuelve solo los de hoy. Las reversas quedan fuera salvo incluirRevertidos=true.
// @Tags         movimientos
// @Produce      json
// @Param        productoId         query  string  false  "Filtrar por producto"
// @Param        tipo               query  string  false  "Tipo de movimiento (INGRESO)"
// @Param        desde              query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta              query  string  false  "Fecha final YYYY-MM-DD"
// @Param        incluirRevertidos  query  bool    false  "Incluir movimientos revertidos"
// @Param        limit              query  int     false  "Tamaño de página (máx 100)"
// @Param        offset             query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovementHandler) Search(c *fiber.Ctx) error {
	var q dto.MovementSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "query inválido")
	}
	from, to, err := parseDateRange(q.From, q.To)
	if err != nil {
		return badRequest(c, "fecha inválida, formato esperado YYYY-MM-DD")
	}
	filter := repository.MovementFilter{
		ProductID:       q.ProductID,
		Type:            q.Type,
		From:            from,
		To:              to,
		IncludeReversed: q.IncludeReversed,
	}
	out, err := h.uc.Search(filter, q.PageRequest)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Amend godoc
// @Summary      Corregir movimiento
// @Description  Cambia la cantidad u observación de un movimiento ya registrado. La diferencia de cantidad se aplica al stock del producto en la misma transacción.
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "cantidad corregida y observación"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [put]
func (h *MovementHandler) Amend(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Amend(c.Context(), c.Params("id"), in.Quantity, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reverse godoc
// @Summary      Revertir movimiento
// @Description  Deshace el efecto del movimiento sobre el stock y lo marca como revertido (cantidad 0). El registro se conserva como evidencia; revertir dos veces es inocuo.
// @Tags         movimientos
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [delete]
func (h *MovementHandler) Reverse(c *fiber.Ctx) error {
	out, err := h.uc.Reverse(c.Context(), c.Params("id"), c.Query("observacion"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
