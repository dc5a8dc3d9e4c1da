// handlers/errors.go
package handlers

import (
	"errors"

	"deck-tracker/docstore"
	"deck-tracker/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidArgument), errors.Is(err, docstore.ErrInvalidPath):
		status = fiber.StatusBadRequest
	case errors.Is(err, docstore.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		zap.S().Errorf("[HTTP] ❌ %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
