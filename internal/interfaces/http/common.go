package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/papeleria/papeleria-api/internal/application/dto"
)

// validate instancia compartida; los tags viven en los DTOs.
var validate = validator.New()

const dateLayout = "2006-01-02"

// parseDateRange convierte los query params desde/hasta (YYYY-MM-DD) en un
// rango de instantes: desde a las 00:00:00 y hasta a las 23:59:59.999...
// Un string vacío devuelve nil (sin filtro).
func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.ParseInLocation(dateLayout, fromStr, time.Local)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.ParseInLocation(dateLayout, toStr, time.Local)
		if err != nil {
			return nil, nil, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: message})
}
