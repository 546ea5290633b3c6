package ports

import (
	"context"

	"github.com/team9/crm-auth/internal/core/domain"
)

// RegisterInput carries the fields of a registration request. Role is
// optional; an empty value resolves to domain.DefaultRole.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Phone           string
	Role            string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, domain.TokenPair, error)
	Login(ctx context.Context, username, password string) (*domain.User, domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	CreateSuperuser(ctx context.Context, in RegisterInput) (*domain.User, error)
}
