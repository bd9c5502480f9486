package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

type emailMap map[uuid.UUID]string

func (m emailMap) Email(_ context.Context, id uuid.UUID) (string, error) {
	if email, ok := m[id]; ok {
		return email, nil
	}
	return "", errors.New("not found")
}

func newApp(cfg *config.Config, lookup EmailLookup) *fiber.App {
	app := fiber.New()
	app.Get("/me", JWTProtected(cfg), func(c *fiber.Ctx) error {
		id, _ := CurrentUserID(c)
		return c.SendString(id.String())
	})
	app.Get("/admin", JWTOptional(cfg), AdminRequired(cfg, lookup), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func call(t *testing.T, app *fiber.App, path string, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func issue(t *testing.T, id uuid.UUID, ttl time.Duration) string {
	t.Helper()
	token, err := services.NewTokenIssuer(testSecret, ttl).Issue(id)
	require.NoError(t, err)
	return token
}

func TestJWTProtected(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := newApp(cfg, emailMap{})
	id := uuid.New()

	resp := call(t, app, "/me", map[string]string{"Authorization": "Bearer " + issue(t, id, time.Hour)})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, "/me", map[string]string{"user-id": id.String()})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, "/me", map[string]string{"Authorization": "Bearer " + issue(t, id, -time.Minute)})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	forged, err := services.NewTokenIssuer("other-secret", time.Hour).Issue(id)
	require.NoError(t, err)
	resp = call(t, app, "/me", map[string]string{"Authorization": "Bearer " + forged})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtected_RequiresExpiry(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := newApp(cfg, emailMap{})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{UserID: uuid.NewString()}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := call(t, app, "/me", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequired(t *testing.T) {
	adminID, userID := uuid.New(), uuid.New()
	cfg := &config.Config{JWTSecret: testSecret, AdminToken: "s3cret", AdminEmails: "Admin@Example.com"}
	app := newApp(cfg, emailMap{adminID: "admin@example.com", userID: "user@example.com"})

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"no credentials", nil, http.StatusUnauthorized},
		{"wrong admin token", map[string]string{"X-Admin-Token": "nope"}, http.StatusUnauthorized},
		{"admin token", map[string]string{"X-Admin-Token": "s3cret"}, http.StatusNoContent},
		{"admin account", map[string]string{"Authorization": "Bearer " + issue(t, adminID, time.Hour)}, http.StatusNoContent},
		{"regular account", map[string]string{"Authorization": "Bearer " + issue(t, userID, time.Hour)}, http.StatusForbidden},
		{"bad bearer", map[string]string{"Authorization": "Bearer junk"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, app, "/admin", tt.headers)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAdminRequired_EmptyTokenNeverMatches(t *testing.T) {
	app := newApp(&config.Config{JWTSecret: testSecret}, emailMap{})
	resp := call(t, app, "/admin", map[string]string{"X-Admin-Token": ""})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtected_ClaimsMatchTokenIssuerRules(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	app := newApp(cfg, emailMap{})
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
		UserID:           "not-a-uuid",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, services.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
		UserID:           uuid.NewString(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{"non-uuid subject": badSubject, "hs512": otherAlg} {
		t.Run(name, func(t *testing.T) {
			resp := call(t, app, "/me", map[string]string{"Authorization": "Bearer " + token})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}

	id := uuid.New()
	resp := call(t, app, "/me", map[string]string{"Authorization": "Bearer " + issue(t, id, time.Hour)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, id.String(), string(body))
}
