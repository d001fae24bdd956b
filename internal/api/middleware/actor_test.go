package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/parqueo-gt/parqueo/internal/audit"
)

func TestActor(t *testing.T) {
	t.Run("captures user id from header", func(t *testing.T) {
		var got audit.Actor

		app := fiber.New()
		app.Use(Actor())
		app.Get("/test", func(c *fiber.Ctx) error {
			got = GetActor(c)
			return c.SendString("OK")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(HeaderUserID, "admin@parqueo.gt")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		assert.Equal(t, "admin@parqueo.gt", got.UserID)
		assert.NotEmpty(t, got.ClientIP)
	})

	t.Run("missing header leaves user id empty", func(t *testing.T) {
		var got audit.Actor

		app := fiber.New()
		app.Use(Actor())
		app.Get("/test", func(c *fiber.Ctx) error {
			got = GetActor(c)
			return c.SendString("OK")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		assert.Empty(t, got.UserID)
		assert.NotEmpty(t, got.ClientIP)
	})
}
