package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biosecret/go-taskmanager/models"
	"github.com/biosecret/go-taskmanager/utils"
)

const testSecret = "taskmanager_test_jwt_secret_key_1234567890"

func newProtectedApp(tokens TokenVerifier) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/me", JWTMiddleware(tokens), func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(id)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, authorization string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestJWTMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager(testSecret)
	valid, err := tokens.Issue(models.Identity{UserID: 5, Username: "alice"})
	require.NoError(t, err)

	foreign, err := utils.NewTokenManager("some_other_secret_that_is_long_enough").
		Issue(models.Identity{UserID: 5, Username: "alice"})
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"scheme without token", "Bearer", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusForbidden},
		{"foreign signature", "Bearer " + foreign, http.StatusForbidden},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}
	app := newProtectedApp(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doGet(t, app, tt.authorization)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestJWTMiddleware_AttachesIdentity(t *testing.T) {
	tokens := utils.NewTokenManager(testSecret)
	token, err := tokens.Issue(models.Identity{UserID: 9, Username: "bob"})
	require.NoError(t, err)

	status, body := doGet(t, newProtectedApp(tokens), "Bearer "+token)
	require.Equal(t, http.StatusOK, status)

	var id models.Identity
	require.NoError(t, json.Unmarshal(body, &id))
	assert.Equal(t, models.Identity{UserID: 9, Username: "bob"}, id)
}

type expiredVerifier struct{}

func (expiredVerifier) Verify(string) (models.Identity, error) {
	return models.Identity{}, utils.ErrExpiredToken
}

func TestJWTMiddleware_ExpiredTokenIsForbidden(t *testing.T) {
	status, _ := doGet(t, newProtectedApp(expiredVerifier{}), "Bearer expired")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRequestTimeout(t *testing.T) {
	app := fiber.New()
	app.Get("/slow", RequestTimeout(20*time.Millisecond), func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		<-c.UserContext().Done()
		if time.Until(deadline) > 0 {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusGatewayTimeout)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/slow", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
}
