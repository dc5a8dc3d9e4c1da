// handlers/routes.go
package handlers

import (
	"errors"

	"deck-tracker/services"
	"deck-tracker/utils"

	"github.com/gofiber/fiber/v2"
)

// Services bundles what the routes need.
type Services struct {
	Profiles *services.ProfileService
	Decks    *services.DeckService
	Matches  *services.MatchService
	Stats    *services.StatsService
	Catalog  *services.CatalogClient
	Avatars  utils.AvatarStore
}

// SetupRoutes registers every API route on app.
func SetupRoutes(app *fiber.App, svc Services) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupProfileRoutes(app, svc.Profiles, svc.Avatars)
	SetupDeckRoutes(app, svc.Decks, svc.Catalog)
	SetupMatchRoutes(app, svc.Matches)
	SetupStatsRoutes(app, svc.Stats)
	SetupCardRoutes(app, svc.Catalog)
}

// ErrorHandler renders errors that escape the handlers as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
