package handlers

import (
	"errors"
	"fmt"
	"log"

	"estilo/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// detail writes the uniform error body shape used across the API.
func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// writeError translates domain errors into client-facing responses with
// fixed messages. Anything outside the taxonomy is logged and collapsed to
// a generic 500 so persistence-layer details never leak.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrForbidden):
		return detail(c, fiber.StatusForbidden, "Admins only.")
	case errors.Is(err, models.ErrEmptyOrder):
		return detail(c, fiber.StatusUnprocessableEntity, "Order must contain at least one item.")
	case errors.Is(err, models.ErrProductNotFound):
		return detail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInsufficientStock):
		return detail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDuplicateBarcode):
		return detail(c, fiber.StatusBadRequest, "Barcode already registered.")
	case errors.Is(err, models.ErrDuplicateClient):
		return detail(c, fiber.StatusBadRequest, "Email or CPF already registered.")
	case errors.Is(err, models.ErrNotFound):
		// "not found" and "access denied" are deliberately conflated so
		// callers cannot enumerate records.
		return detail(c, fiber.StatusNotFound, "Not found or access denied.")
	case errors.Is(err, models.ErrUserCantBeCreated):
		return detail(c, fiber.StatusBadRequest, "Email already registered")
	default:
		log.Printf("Unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
		return detail(c, fiber.StatusInternalServerError, "Internal server error.")
	}
}

// validationError formats validator.v10 failures into a 4xx response
// before any service call happens.
func validationError(c *fiber.Ctx, status int, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make(map[string]string, len(verrs))
		for _, e := range verrs {
			messages[e.Field()] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
		}
		return c.Status(status).JSON(fiber.Map{
			"detail": "Validation failed",
			"errors": messages,
		})
	}
	return detail(c, status, "Validation failed")
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return uint(id), nil
}

// pagination reads the skip/limit query parameters with their defaults.
func pagination(c *fiber.Ctx) (skip, limit int) {
	return c.QueryInt("skip", 0), c.QueryInt("limit", 100)
}
