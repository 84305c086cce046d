package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/papeleria/papeleria-api/internal/application/dto"
	"github.com/papeleria/papeleria-api/internal/application/sales"
	"github.com/papeleria/papeleria-api/internal/domain/repository"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Registra una venta de varios renglones descontando stock de forma atómica: si algún producto no alcanza, no se descuenta nada.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "método de pago y renglones"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         ventas
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Description  Lista ventas con filtros; sin fechas devuelve solo las de hoy. Incluye el total acumulado de todas las ventas que cumplen el filtro.
// @Tags         ventas
// @Produce      json
// @Param        metodoPago       query  string  false  "Método de pago"
// @Param        desde            query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta            query  string  false  "Fecha final YYYY-MM-DD"
// @Param        minTotal         query  number  false  "Total mínimo"
// @Param        maxTotal         query  number  false  "Total máximo"
// @Param        incluirAnuladas  query  bool    false  "Incluir ventas anuladas"
// @Param        limit            query  int     false  "Tamaño de página (máx 100)"
// @Param        offset           query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.SaleSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "query inválido")
	}
	from, to, err := parseDateRange(q.From, q.To)
	if err != nil {
		return badRequest(c, "fecha inválida, formato esperado YYYY-MM-DD")
	}
	filter := repository.SaleFilter{
		PaymentMethod: q.PaymentMethod,
		From:          from,
		To:            to,
		IncludeVoided: q.IncludeVoided,
	}
	if q.MinTotal != "" {
		min, err := decimal.NewFromString(q.MinTotal)
		if err != nil {
			return badRequest(c, "minTotal inválido")
		}
		filter.MinTotal = &min
	}
	if q.MaxTotal != "" {
		max, err := decimal.NewFromString(q.MaxTotal)
		if err != nil {
			return badRequest(c, "maxTotal inválido")
		}
		filter.MaxTotal = &max
	}
	out, err := h.uc.List(c.Context(), filter, q.PageRequest)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar venta
// @Description  Reemplaza los renglones de la venta. El stock de los renglones anteriores se repone y el de los nuevos se descuenta, todo en una transacción; los precios se recotizan al valor actual.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "método de pago y renglones nuevos"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Anular venta
// @Description  Anula la venta reponiendo el stock de todos sus renglones. La cabecera se conserva con total 0 y estado ANULADA.
// @Tags         ventas
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Lines godoc
// @Summary      Renglones de una venta
// @Tags         ventas
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {array}   dto.SaleLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/detalles [get]
func (h *SaleHandler) Lines(c *fiber.Ctx) error {
	out, err := h.uc.Lines(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SearchLines godoc
// @Summary      Buscar renglones de venta
// @Description  Busca renglones de forma transversal a las ventas, por nombre de producto y rango de fechas. Sin filtros devuelve solo los de hoy.
// @Tags         ventas
// @Produce      json
// @Param        nombreProducto  query  string  false  "Nombre del producto (contiene)"
// @Param        desde           query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta           query  string  false  "Fecha final YYYY-MM-DD"
// @Param        limit           query  int     false  "Tamaño de página (máx 100)"
// @Param        offset          query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.SaleLineListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas/detalles [get]
func (h *SaleHandler) SearchLines(c *fiber.Ctx) error {
	var q dto.SaleLineSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "query inválido")
	}
	from, to, err := parseDateRange(q.From, q.To)
	if err != nil {
		return badRequest(c, "fecha inválida, formato esperado YYYY-MM-DD")
	}
	filter := repository.SaleLineFilter{
		ProductName: q.ProductName,
		From:        from,
		To:          to,
	}
	out, err := h.uc.SearchLines(c.Context(), filter, q.PageRequest)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
