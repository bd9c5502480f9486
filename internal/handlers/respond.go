package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Message: message})
}

func badBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
}

// serverError logs err with request context and answers with a generic 500.
func serverError(c *fiber.Ctx, msg string, err error) error {
	attrs := []interface{}{
		"error", err,
		"route", c.Method() + " " + c.Route().Path,
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		attrs = append(attrs, "request_id", rid)
	}
	if uid, ok := middleware.CurrentUserID(c); ok {
		attrs = append(attrs, "user_id", uid.String())
	}
	slog.Error(msg, attrs...)
	return errorJSON(c, fiber.StatusInternalServerError, "Server error")
}

// validationFailed writes a 400 with per-field messages when err is a
// *services.ValidationError.
func validationFailed(c *fiber.Ctx, err error) (bool, error) {
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		return false, nil
	}
	return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  verr.Fields,
	})
}
