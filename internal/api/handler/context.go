package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both user id and
// role must be present, which proves the middleware ran and verified the
// token.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Identity{UserID: userID, Role: role}, nil
}
