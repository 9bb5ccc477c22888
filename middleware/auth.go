package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/go-taskmanager/models"
)

type identityKey struct{}

// TokenVerifier checks a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// JWTMiddleware rejects requests without a token with 401 and requests with an
// invalid or expired token with 403. On success the identity is stored in the
// request locals, see IdentityFrom.
func JWTMiddleware(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Access denied. No token provided.")
		}

		id, err := tokens.Verify(tokenString)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Invalid or expired token.")
		}

		c.Locals(identityKey{}, id)
		return c.Next()
	}
}

// IdentityFrom returns the identity attached by JWTMiddleware.
func IdentityFrom(c *fiber.Ctx) (models.Identity, bool) {
	id, ok := c.Locals(identityKey{}).(models.Identity)
	return id, ok
}

// bearerToken returns the credentials part of "Bearer <token>". Like the
// browser client, any scheme word is tolerated and a wrong token fails verification.
func bearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
