package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/papeleria/papeleria-api/internal/application/catalog"
	"github.com/papeleria/papeleria-api/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Registra un producto nuevo. Si stock > 0 se genera automáticamente un movimiento INGRESO de stock inicial.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "nombre, precios, stock inicial, categoría"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
// @Summary      Obtener producto
// @Tags         productos
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  Lista con filtros por nombre (contiene), categoría y estado. Sin filtro de estado devuelve solo activos.
// @Tags         productos
// @Produce      json
// @Param        nombre     query  string  false  "Filtro por nombre (contiene, sin mayúsculas)"
// @Param        categoria  query  string  false  "Filtro por categoría exacta"
// @Param        estado     query  bool    false  "true = activos, false = inactivos"
// @Param        limit      query  int     false  "Tamaño de página (máx 100)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "query inválido")
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Actualización parcial: los campos omitidos no se tocan. El stock no es editable por esta vía.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleActive godoc
// @Summary      Alternar estado del producto
// @Description  Activa un producto inactivo y viceversa. Los inactivos no aparecen en listados normales pero conservan su historial.
// @Tags         productos
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/estado [patch]
func (h *ProductHandler) ToggleActive(c *fiber.Ctx) error {
	out, err := h.uc.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddStock godoc
// @Summary      Agregar stock
// @Description  Suma unidades al producto y registra el movimiento INGRESO correspondiente, de forma atómica.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del producto"
// @Param        body  body  dto.AddStockRequest  true  "cantidad (> 0) y observación"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/agregar [patch]
func (h *ProductHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.AddStock(c.Context(), c.Params("id"), in.Quantity, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddStockBulk godoc
// @Summary      Ingreso masivo de stock
// @Description  Aplica varias entradas de stock en una sola transacción: o se aplican todas o ninguna.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAddStockRequest  true  "lista de movimientos"
// @Success      200   {array}   dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/agregar-masivo [patch]
func (h *ProductHandler) AddStockBulk(c *fiber.Ctx) error {
	var in dto.BulkAddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.AddStockBulk(c.Context(), in.Entries)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
