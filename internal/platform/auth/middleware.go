package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

// Middleware returns echo middleware that requires a valid bearer access
// token. The authenticated user's ID and email are placed on the request
// context for downstream handlers.
func Middleware(issuer *Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, issuer)
			if err != nil {
				return err
			}
			setUser(c, claims)
			return next(c)
		}
	}
}

// OptionalMiddleware attaches user identity when a valid bearer token is
// present but lets anonymous requests through. A malformed or expired token
// is treated as anonymous rather than rejected, so public endpoints stay
// usable without credentials.
func OptionalMiddleware(issuer *Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			claims, err := claimsFromRequest(c, issuer)
			if err == nil {
				setUser(c, claims)
			}
			return next(c)
		}
	}
}

func claimsFromRequest(c echo.Context, issuer *Issuer) (*Claims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
	}

	claims, err := issuer.Verify(parts[1], TokenTypeAccess)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func setUser(c echo.Context, claims *Claims) {
	ctx := c.Request().Context()
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
	c.SetRequest(c.Request().WithContext(ctx))
}

// UserIDFromContext returns the authenticated user's ID, or uuid.Nil and
// false when the request is anonymous.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// EmailFromContext returns the authenticated user's email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
