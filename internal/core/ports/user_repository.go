package ports

import (
	"context"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Emails are unique
// case-insensitively; implementations store them lowercased.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
