package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobhive/jobboard-api/internal/api/metrics"
	"github.com/jobhive/jobboard-api/internal/api/middleware"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

// AuthHandler handles registration, login and session management.
type AuthHandler struct {
	authService ports.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  successEnvelope
// @Failure      400   {object}  errorEnvelope
// @Failure      409   {object}  errorEnvelope
// @Failure      422   {object}  errorEnvelope
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, successEnvelope{Success: true, Data: user})
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      422   {object}  errorEnvelope
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()

	// cookie expiry matches the token's validity window
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: loginResponse{Token: token, User: user}})
}

// Logout clears the session cookie. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successEnvelope
// @Router       /api/v1/auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: "logged out"})
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  successEnvelope
// @Failure      401  {object}  errorEnvelope
// @Router       /api/v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: user})
}

// ChangePassword replaces the authenticated user's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  successEnvelope
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Router       /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: "password updated"})
}
