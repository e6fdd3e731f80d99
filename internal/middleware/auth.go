package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vbreban/accounts-backend/internal/config"
	"github.com/vbreban/accounts-backend/internal/dto"
)

// JWTProtected rejects requests without a valid bearer token. Signature and
// expiry checks happen here; handlers resolve the identity via UserID.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "Not authorized",
			})
		},
	})
}

// UserID extracts the user identifier claim from the verified token in the
// request context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	userID, ok := claims["userId"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing userId claim")
	}

	return uuid.Parse(userID)
}
