package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Post("/webhook", handler, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/cron", handler, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestPOSAuthMiddleware(t *testing.T) {
	app := newProtectedApp(POSAuthMiddleware("segredo"))

	req := httptest.NewRequest("POST", "/webhook", nil)
	req.Header.Set("x-auth-token", "segredo")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("POST", "/webhook", nil)
	req.Header.Set("x-auth-token", "errado")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("POST", "/webhook", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPOSAuthMiddlewareUnconfigured(t *testing.T) {
	app := newProtectedApp(POSAuthMiddleware(""))

	req := httptest.NewRequest("POST", "/webhook", nil)
	req.Header.Set("x-auth-token", "")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCronAuthMiddlewareBearer(t *testing.T) {
	app := newProtectedApp(CronAuthMiddleware("cron-secret"))

	req := httptest.NewRequest("GET", "/cron", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCronAuthMiddlewareQueryToken(t *testing.T) {
	app := newProtectedApp(CronAuthMiddleware("cron-secret"))

	resp, err := app.Test(httptest.NewRequest("GET", "/cron?token=cron-secret", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/cron?token=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCronAuthMiddlewareNoSecretConfigured(t *testing.T) {
	app := newProtectedApp(CronAuthMiddleware(""))

	resp, err := app.Test(httptest.NewRequest("GET", "/cron", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
