package handler

import "github.com/jobhive/jobboard-api/internal/core/domain"

// successEnvelope is the standard body for all 2xx responses.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorEnvelope documents the error body rendered by the central error
// handler. Declared here for the swagger annotations only.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	// admin accounts are seeded out of band, never self-registered
	Role string `json:"role" validate:"required,oneof=user employer"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}
