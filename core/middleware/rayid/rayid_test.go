package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("ray_id").(string))
	})
	return app
}

func TestNew_GeneratesRayID(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	rid := resp.Header.Get(HeaderName)
	_, err = uuid.Parse(rid)
	assert.NoError(t, err, "generated RayID should be a UUID")
}

func TestNew_HonorsIncomingHeader(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderName, "upstream-trace-1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "upstream-trace-1", resp.Header.Get(HeaderName))
}
