// handlers/deck_routes.go
package handlers

import (
	"strings"

	"deck-tracker/middleware"
	"deck-tracker/models"
	"deck-tracker/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type createDeckRequest struct {
	Name     string `json:"name"`
	Format   string `json:"format"`
	CardList string `json:"cardList"`
}

func SetupDeckRoutes(app *fiber.App, deckService *services.DeckService, catalog *services.CatalogClient) {
	decks := app.Group("/profiles/:profileId/decks")
	guard := middleware.ProfileContext()

	decks.Get("/", guard, func(c *fiber.Ctx) error {
		list, err := deckService.GetDecks(c.UserContext(), middleware.ProfileID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})

	decks.Post("/", guard, func(c *fiber.Ctx) error {
		var req createDeckRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		deck, err := deckService.CreateDeck(c.UserContext(), middleware.ProfileID(c), req.Name, normalizeFormat(req.Format), req.CardList)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(deck)
	})

	decks.Get("/:deckId", guard, func(c *fiber.Ctx) error {
		deck, err := deckService.GetDeck(c.UserContext(), middleware.ProfileID(c), c.Params("deckId"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(deck)
	})

	updateDeck := func(c *fiber.Ctx) error {
		var update models.DeckUpdate
		if err := c.BodyParser(&update); err != nil {
			return badRequest(c, "invalid request body")
		}
		if update.Format != nil {
			f := normalizeFormat(*update.Format)
			update.Format = &f
		}
		profileID, deckID := middleware.ProfileID(c), c.Params("deckId")
		if err := deckService.UpdateDeck(c.UserContext(), profileID, deckID, update); err != nil {
			return respondError(c, err)
		}
		deck, err := deckService.GetDeck(c.UserContext(), profileID, deckID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(deck)
	}
	decks.Patch("/:deckId", guard, updateDeck)
	decks.Put("/:deckId", guard, updateDeck)

	decks.Delete("/:deckId", guard, func(c *fiber.Ctx) error {
		deckID := c.Params("deckId")
		if err := deckService.DeleteDeck(c.UserContext(), middleware.ProfileID(c), deckID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "deck deleted", "id": deckID})
	})

	// One entry per card line, in order, plus the flat list of resolved URLs.
	decks.Get("/:deckId/images", guard, func(c *fiber.Ctx) error {
		deck, err := deckService.GetDeck(c.UserContext(), middleware.ProfileID(c), c.Params("deckId"))
		if err != nil {
			return respondError(c, err)
		}
		slots := catalog.ResolveCardImageSlots(c.UserContext(), deck.CardList)
		return c.JSON(fiber.Map{
			"deckId": deck.ID,
			"cards":  slots,
			"images": services.ImageURLs(slots),
		})
	})

	decks.Get("/:deckId/export", guard, func(c *fiber.Ctx) error {
		deck, err := deckService.GetDeck(c.UserContext(), middleware.ProfileID(c), c.Params("deckId"))
		if err != nil {
			return respondError(c, err)
		}
		c.Attachment(exportFilename(deck.Name))
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(deck.CardList)
	})
}

// normalizeFormat title-cases a format name ("expanded" -> "Expanded") and
// defaults to Standard.
func normalizeFormat(format string) string {
	format = strings.TrimSpace(format)
	if format == "" {
		return models.FormatStandard
	}
	return cases.Title(language.Und).String(strings.ToLower(format))
}

func exportFilename(deckName string) string {
	name := slug.Make(deckName)
	if name == "" {
		name = "deck"
	}
	return name + ".txt"
}
