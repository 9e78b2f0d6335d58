package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Core error taxonomy. Handlers map these to HTTP statuses; everything else
// surfaces as an opaque 500. Idempotent operations never return an error for
// "already exists" — they report created=false instead.
var (
	ErrInvalidCoordinate = errors.New("latitude/longitude out of range")
	ErrInvalidTarget     = errors.New("target must be a different user")
	ErrTargetNotFound    = errors.New("target user not found")
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("caller is not a party to this record")
)

// httpError translates a core error into a fiber JSON response.
func httpError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidCoordinate), errors.Is(err, ErrInvalidTarget):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrTargetNotFound), errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
