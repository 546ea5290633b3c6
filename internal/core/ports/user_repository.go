package ports

import (
	"context"

	"github.com/team9/crm-auth/internal/core/domain"
)

// UserRepository defines the persistence contract for user credentials.
// Create must be atomic: uniqueness enforcement and the insert are a single
// unit, never a pre-check followed by a write.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Exists(ctx context.Context, usernameOrEmail string) (bool, error)
}
