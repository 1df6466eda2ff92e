package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

type stubVerifier struct {
	identity domain.Identity
	err      error
	seen     string
}

func (v *stubVerifier) Verify(token string) (domain.Identity, error) {
	v.seen = token
	if v.err != nil {
		return domain.Identity{}, v.err
	}
	return v.identity, nil
}

func runAuth(t *testing.T, verifier TokenVerifier, decorate func(*http.Request)) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(verifier)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAuth_CookieToken(t *testing.T) {
	verifier := &stubVerifier{identity: domain.Identity{UserID: "u1", Role: domain.RoleEmployer}}

	_, c, err := runAuth(t, verifier, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "cookie-token"})
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if verifier.seen != "cookie-token" {
		t.Fatalf("expected cookie token, verifier saw %q", verifier.seen)
	}
	if c.Get("user_id") != "u1" || c.Get("role") != domain.RoleEmployer {
		t.Fatalf("identity not injected: %v / %v", c.Get("user_id"), c.Get("role"))
	}
}

func TestAuth_BearerFallback(t *testing.T) {
	verifier := &stubVerifier{identity: domain.Identity{UserID: "u2", Role: domain.RoleUser}}

	_, _, err := runAuth(t, verifier, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer header-token")
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if verifier.seen != "header-token" {
		t.Fatalf("expected header token, verifier saw %q", verifier.seen)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	verifier := &stubVerifier{}

	_, _, err := runAuth(t, verifier, nil)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if verifier.seen != "" {
		t.Fatalf("verifier should not be called without a token")
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrUnauthenticated}

	_, _, err := runAuth(t, verifier, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "garbage"})
	})
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %v", err)
	}
}
