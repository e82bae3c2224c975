package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(apiKey string) *fiber.App {
	app := fiber.New()
	app.Use(New(Config{ApiKey: apiKey}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestNew_AllowsMatchingKey(t *testing.T) {
	app := newProtectedApp("s3cret")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderName, "s3cret")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestNew_RejectsMissingOrWrongKey(t *testing.T) {
	app := newProtectedApp("s3cret")

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderName, "wrong")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestNew_EmptyKeyDisablesAuth(t *testing.T) {
	app := newProtectedApp("")

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
