package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/papeleria/papeleria-api/internal/application/report"
)

// ReportHandler maneja las peticiones HTTP de reportes.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// reportRange lee desde/hasta; sin parámetros el reporte es del día de hoy.
func reportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, to, err := parseDateRange(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	now := time.Now()
	start, end := now, now
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	return start, end, nil
}

// General godoc
// @Summary      Reporte general
// @Description  Ganancia neta (margen de ventas menos gastos), total vendido, número de ventas y top 10 de más vendidos del rango. Sin fechas, el reporte es del día de hoy.
// @Tags         reportes
// @Produce      json
// @Param        desde  query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta  query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {object}  dto.GeneralReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/generales [get]
func (h *ReportHandler) General(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return badRequest(c, "fecha inválida, formato esperado YYYY-MM-DD")
	}
	out, err := h.uc.General(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GeneralPDF godoc
// @Summary      Reporte general en PDF
// @Tags         reportes
// @Produce      application/pdf
// @Param        desde  query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta  query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/generales/pdf [get]
func (h *ReportHandler) GeneralPDF(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return badRequest(c, "fecha inválida, formato esperado YYYY-MM-DD")
	}
	pdfBytes, err := h.uc.GeneralPDF(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-general.pdf"`)
	return c.Send(pdfBytes)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos con stock menor o igual al umbral (3 por defecto), los más escasos primero.
// @Tags         reportes
// @Produce      json
// @Param        umbral  query  int  false  "Umbral de stock"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/stock-bajo [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	var threshold *int
	if s := c.Query("umbral"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return badRequest(c, "umbral inválido")
		}
		threshold = &n
	}
	out, err := h.uc.LowStock(c.Context(), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
