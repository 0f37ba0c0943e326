package middleware

import (
	"errors"

	"ledger-admin/internal/domain"
	"ledger-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Returns the standard error format.
// Domain errors map to 400/404/409; anything unrecognised is a 500 whose
// cause is logged, not returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	details := map[string]interface{}{}

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case domain.IsValidation(err):
		code = fiber.StatusBadRequest
		message = err.Error()
	case domain.IsNotFound(err):
		code = fiber.StatusNotFound
		message = err.Error()
	case domain.IsConflict(err):
		code = fiber.StatusConflict
		message = err.Error()
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("request failed")
	}
	if id := GetTraceID(c); id != "" {
		details["trace_id"] = id
	}

	return response.Error(c, message, code, details)
}
