// handlers/stats_routes.go
package handlers

import (
	"deck-tracker/middleware"
	"deck-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// SetupStatsRoutes registers the cross-deck views of a profile. Both accept
// ?deck=<deckId> or ?deck=all.
func SetupStatsRoutes(app *fiber.App, statsService *services.StatsService) {
	guard := middleware.ProfileContext()

	app.Get("/profiles/:profileId/matches", guard, func(c *fiber.Ctx) error {
		history, err := statsService.MatchHistory(c.UserContext(), middleware.ProfileID(c), c.Query("deck", services.AllDecks))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(history)
	})

	app.Get("/profiles/:profileId/stats", guard, func(c *fiber.Ctx) error {
		report, err := statsService.Report(c.UserContext(), middleware.ProfileID(c), c.Query("deck", services.AllDecks))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	})
}
