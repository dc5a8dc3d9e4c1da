// handlers/match_routes.go
package handlers

import (
	"strings"

	"deck-tracker/middleware"
	"deck-tracker/models"
	"deck-tracker/services"

	"github.com/gofiber/fiber/v2"
)

type createMatchRequest struct {
	Opponent string `json:"opponent"`
	Result   string `json:"result"`
	Notes    string `json:"notes"`
}

func SetupMatchRoutes(app *fiber.App, matchService *services.MatchService) {
	matches := app.Group("/profiles/:profileId/decks/:deckId/matches")
	guard := middleware.ProfileContext()

	matches.Get("/", guard, func(c *fiber.Ctx) error {
		list, err := matchService.GetMatches(c.UserContext(), middleware.ProfileID(c), c.Params("deckId"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})

	matches.Post("/", guard, func(c *fiber.Ctx) error {
		var req createMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		result := models.MatchResult(strings.ToLower(strings.TrimSpace(req.Result)))
		match, err := matchService.CreateMatch(c.UserContext(), middleware.ProfileID(c), c.Params("deckId"), req.Opponent, result, req.Notes)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(match)
	})

	matches.Delete("/:matchId", guard, func(c *fiber.Ctx) error {
		matchID := c.Params("matchId")
		if err := matchService.DeleteMatch(c.UserContext(), middleware.ProfileID(c), c.Params("deckId"), matchID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "match deleted", "id": matchID})
	})
}
