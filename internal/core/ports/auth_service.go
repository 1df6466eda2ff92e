package ports

import (
	"context"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login authenticates by email and password and returns a signed token
	// together with the user. Unknown email and wrong password are
	// deliberately indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Verify checks the token's signature and expiry and returns the
	// embedded identity. The role is read from the claims, not the store.
	Verify(token string) (domain.Identity, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
