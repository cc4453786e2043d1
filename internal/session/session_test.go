package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionApp(m *Manager) *fiber.App {
	app := fiber.New()
	app.Post("/save", func(c *fiber.Ctx) error {
		return m.Save(c, "user-1", "Chef")
	})
	app.Get("/load", func(c *fiber.Ctx) error {
		userID, role, err := m.Load(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(userID + "|" + role)
	})
	return app
}

func savedCookie(t *testing.T, app *fiber.App) *http.Cookie {
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/save", nil))
	require.NoError(t, err)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestManager_RoundTrip(t *testing.T) {
	app := newSessionApp(NewManager("secret", false))
	cookie := savedCookie(t, app)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, sessionMaxAge, cookie.MaxAge)

	req := httptest.NewRequest(fiber.MethodGet, "/load", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "user-1|Chef", string(body))
}

func TestManager_RejectsForeignCookie(t *testing.T) {
	cookie := savedCookie(t, newSessionApp(NewManager("one secret", false)))

	req := httptest.NewRequest(fiber.MethodGet, "/load", nil)
	req.AddCookie(cookie)
	resp, err := newSessionApp(NewManager("another secret", false)).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = newSessionApp(NewManager("one secret", false)).Test(httptest.NewRequest(fiber.MethodGet, "/load", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
