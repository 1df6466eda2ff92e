package domain

import (
	"errors"
	"time"
)

const (
	RoleUser     = "user"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrWeakCredential = errors.New("password does not meet policy")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleEmployer || role == RoleAdmin
}

// User models an account in the system. The password is stored only as a
// bcrypt hash and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the (user id, role) pair recovered from a verified token.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanManage reports whether the identity may mutate a job owned by ownerID.
// Admins pass ownership checks implicitly.
func (i Identity) CanManage(ownerID string) bool {
	return i.IsAdmin() || i.UserID == ownerID
}
