package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// UserIDContextKey is the echo context key holding the authenticated user ID
	UserIDContextKey = "user_id"
)

// TokenValidator verifies a bearer token and returns the user ID it carries
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

// JWTAuth returns an Echo middleware that requires a valid bearer token and
// stores the authenticated user ID in the request context.
func JWTAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c, "Missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(c, "Invalid authorization header format")
			}

			userID, err := validator.ValidateToken(parts[1])
			if err != nil {
				return unauthorized(c, "Invalid or expired token")
			}

			c.Set(UserIDContextKey, userID)
			return next(c)
		}
	}
}

// GetUserID extracts the authenticated user ID from the echo context.
// Returns uuid.Nil when the request did not pass JWTAuth.
func GetUserID(c echo.Context) uuid.UUID {
	if userID, ok := c.Get(UserIDContextKey).(uuid.UUID); ok {
		return userID
	}
	return uuid.Nil
}

func unauthorized(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"type":     "https://smartbudget.app/errors/unauthorized",
		"title":    "Unauthorized",
		"status":   http.StatusUnauthorized,
		"detail":   detail,
		"instance": c.Request().URL.Path,
	})
}
