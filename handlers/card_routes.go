// handlers/card_routes.go
package handlers

import (
	"deck-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCardRoutes(app *fiber.App, catalog *services.CatalogClient) {
	cards := app.Group("/cards")

	cards.Get("/search", func(c *fiber.Ctx) error {
		return c.JSON(catalog.SearchCards(c.UserContext(), c.Query("q")))
	})

	cards.Get("/image", func(c *fiber.Ctx) error {
		name := c.Query("name")
		if name == "" {
			return badRequest(c, "name query parameter is required")
		}
		return c.JSON(fiber.Map{
			"name":     name,
			"imageUrl": catalog.GetCardImageByName(c.UserContext(), name),
		})
	})

	cards.Get("/:cardId", func(c *fiber.Ctx) error {
		card := catalog.GetCardByID(c.UserContext(), c.Params("cardId"))
		if card == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "card not found"})
		}
		return c.JSON(card)
	})
}
