package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

func runRBAC(t *testing.T, role string, allowed ...string) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	called := false
	handler := RBAC(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, handler(c)
}

func TestRBAC_Allows(t *testing.T) {
	for _, role := range []string{domain.RoleEmployer, domain.RoleAdmin} {
		called, err := runRBAC(t, role, domain.RoleEmployer, domain.RoleAdmin)
		if err != nil {
			t.Fatalf("role %s: handler error: %v", role, err)
		}
		if !called {
			t.Fatalf("role %s: next handler not called", role)
		}
	}
}

func TestRBAC_Forbids(t *testing.T) {
	called, err := runRBAC(t, domain.RoleUser, domain.RoleEmployer, domain.RoleAdmin)
	if called {
		t.Fatalf("next handler reached with disallowed role")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRBAC_UnauthenticatedBeforeForbidden(t *testing.T) {
	// No role in context means Auth never ran or failed: 401, not 403.
	called, err := runRBAC(t, "", domain.RoleUser)
	if called {
		t.Fatalf("next handler reached without identity")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
