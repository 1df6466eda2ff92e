package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC allows the request only when the verified identity's role is a
// member of allowedRoles. It must run after Auth; without a verified role
// in context the request is rejected as unauthenticated, not forbidden.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "role not permitted for this operation")
			}
			return next(c)
		}
	}
}
