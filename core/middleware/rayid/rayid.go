// Package rayid assigns a unique request identifier to every request.
//
// The RayID is stored in the request locals under "ray_id" and echoed in
// the X-Ray-Id response header so that client-side reports can be
// correlated with server logs.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's RayID.
const HeaderName = "X-Ray-Id"

// New returns a middleware that generates a RayID per request.
// An incoming X-Ray-Id header is honored so upstream proxies can
// propagate their own correlation IDs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
