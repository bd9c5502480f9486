package middleware

import (
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIDKey = "userID"

// JWTProtected verifies the bearer token and stores the account id for
// CurrentUserID. Any other identity header is ignored. jwtware checks the
// signature; the claims are then held to the same rules as
// services.TokenIssuer.Verify (HS256 only, exp required, UUID subject).
func JWTProtected(cfg *config.Config) fiber.Handler {
	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)

	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		Claims:     &services.Claims{},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c)
			}
			id, err := tokens.Verify(token.Raw)
			if err != nil {
				return unauthorized(c)
			}
			c.Locals(userIDKey, id)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// CurrentUserID returns the account id set by JWTProtected.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Success: false,
		Message: "Not authorized: invalid or expired token",
	})
}
