package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EmailLookup resolves an account id to its stored email.
type EmailLookup interface {
	Email(ctx context.Context, userID uuid.UUID) (string, error)
}

// AdminRequired admits a request carrying X-Admin-Token equal to ADMIN_TOKEN,
// or one authenticated by JWTProtected whose account email is in ADMIN_EMAILS.
// Routes using it must run JWTOptional first so bearer tokens are honoured.
func AdminRequired(cfg *config.Config, users EmailLookup) fiber.Handler {
	adminEmails := cfg.AdminEmailList()

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			got := c.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(got), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		userID, ok := CurrentUserID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: "Not authorized",
			})
		}

		email, err := users.Email(c.UserContext(), userID)
		if err == nil && contains(adminEmails, strings.ToLower(email)) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Success: false, Message: "Admin access required",
		})
	}
}

// JWTOptional runs JWTProtected only when an Authorization header is present.
func JWTOptional(cfg *config.Config) fiber.Handler {
	protected := JWTProtected(cfg)
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		return protected(c)
	}
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
