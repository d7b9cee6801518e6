package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingxi/marketplace/pkg/auth"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager("gateway-test-secret", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/protected", Auth(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	})
	app.Get("/admin", Auth(tokens), Admin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, tokens
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	app, _ := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	app, tokens := newAuthTestApp(t)

	token, err := tokens.Generate(1, "alice", "customer")
	require.NoError(t, err)

	for _, header := range []string{
		token,              // missing scheme
		"Basic " + token,   // wrong scheme
		"Bearer",           // missing token
		"Bearer bad token", // too many parts
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	app, tokens := newAuthTestApp(t)

	token, err := tokens.Generate(7, "alice", "customer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthRejectsForeignSecret(t *testing.T) {
	app, _ := newAuthTestApp(t)

	other, err := auth.NewTokenManager("some-other-secret", time.Hour)
	require.NoError(t, err)
	token, err := other.Generate(7, "alice", "customer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminGate(t *testing.T) {
	app, tokens := newAuthTestApp(t)

	customerToken, err := tokens.Generate(7, "alice", "customer")
	require.NoError(t, err)
	adminToken, err := tokens.Generate(1, "root", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
