// handlers/profile_routes.go
package handlers

import (
	"path/filepath"
	"strings"

	"deck-tracker/middleware"
	"deck-tracker/services"
	"deck-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type createProfileRequest struct {
	Name   string `json:"name" form:"name"`
	Avatar string `json:"avatar" form:"avatar"`
}

// SetupProfileRoutes registers the profile endpoints. avatars may be nil, in
// which case uploaded avatar files are rejected.
func SetupProfileRoutes(app *fiber.App, profileService *services.ProfileService, avatars utils.AvatarStore) {
	app.Get("/profiles", func(c *fiber.Ctx) error {
		profiles, err := profileService.GetProfiles(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(profiles)
	})

	// Accepts JSON, or multipart with an optional "avatar" image file.
	app.Post("/profiles", func(c *fiber.Ctx) error {
		var req createProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		if fileHeader, err := c.FormFile("avatar"); err == nil {
			if avatars == nil {
				return badRequest(c, "avatar uploads are not configured")
			}
			if strings.TrimSpace(req.Name) == "" {
				return badRequest(c, "invalid argument: profile name is required")
			}
			url, err := avatars.SaveAvatar(c.UserContext(), fileHeader, avatarKey(req.Name, fileHeader.Filename))
			if err != nil {
				return respondError(c, err)
			}
			req.Avatar = url
		}

		profile, err := profileService.CreateProfile(c.UserContext(), req.Name, req.Avatar)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(profile)
	})

	app.Delete("/profiles/:profileId", middleware.ProfileContext(), func(c *fiber.Ctx) error {
		profileID := middleware.ProfileID(c)
		if err := profileService.DeleteProfile(c.UserContext(), profileID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "profile deleted", "id": profileID})
	})
}

// avatarKey builds a unique object key such as "avatars/ash-1a2b3c4d.png".
func avatarKey(profileName, filename string) string {
	name := slug.Make(profileName)
	if name == "" {
		name = "profile"
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return "avatars/" + name + "-" + uuid.NewString()[:8] + ext
}
