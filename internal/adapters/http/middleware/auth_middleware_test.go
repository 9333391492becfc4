package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"loanapi/internal/core/domain"
	"loanapi/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(t *testing.T, roles ...domain.Role) (*fiber.App, *jwt.Issuer) {
	t.Helper()
	issuer, err := jwt.NewIssuer(jwt.IssuerConfig{Secret: "k", Issuer: "loan-api", Audience: "loan-api-clients"})
	require.NoError(t, err)

	app := fiber.New()
	handlers := []fiber.Handler{AuthMiddleware(issuer)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": AccountID(c), "role": Role(c)})
	})
	app.Get("/", handlers...)
	return app, issuer
}

func get(t *testing.T, app *fiber.App, header string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	app, issuer := newAuthApp(t)
	token, err := issuer.Issue(4, "alice", domain.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(t, app, "Bearer "+token))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, ""))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, token))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "Bearer "))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "Bearer "+token+"x"))
}

func TestRoleMiddleware(t *testing.T) {
	app, issuer := newAuthApp(t, domain.RoleAccountant)

	userToken, err := issuer.Issue(1, "alice", domain.RoleUser)
	require.NoError(t, err)
	accountantToken, err := issuer.Issue(2, "boss", domain.RoleAccountant)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(t, app, "Bearer "+userToken))
	assert.Equal(t, http.StatusOK, get(t, app, "Bearer "+accountantToken))
}
