package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/profiles/:profileId", ProfileContext(), func(c *fiber.Ctx) error {
		return c.SendString(ProfileID(c))
	})
	return app
}

func TestProfileContextStoresID(t *testing.T) {
	resp, err := newProfileApp().Test(httptest.NewRequest(http.MethodGet, "/profiles/abc123", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc123", string(body))
}

func TestProfileContextRejectsMalformedID(t *testing.T) {
	for _, path := range []string{"/profiles/%20%20", "/profiles/a%2Fb", "/profiles/%20p1", "/profiles/p1%09"} {
		resp, err := newProfileApp().Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}
