package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

// TokenCookie is the HTTP-only cookie carrying the session token.
const TokenCookie = "token"

// TokenVerifier verifies a raw token and recovers the embedded identity.
// Implemented by the auth service.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// Auth verifies the session token and injects the identity into context.
// The token is read from the session cookie first, with an Authorization
// bearer header as fallback for cookie-less API clients. A missing or
// invalid token always yields 401, never 403: the role check runs only
// after verification succeeds.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("user_id", identity.UserID)
			c.Set("role", identity.Role)

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
