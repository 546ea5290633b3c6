package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/team9/crm-auth/internal/core/domain"
	"github.com/team9/crm-auth/internal/core/ports"
)

// MinPasswordLength is the registration password policy.
const MinPasswordLength = 8

// AuthService orchestrates registration, login and token refresh over the
// repository, hasher and token codec. Each call is independent; the service
// holds no mutable state.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	codec  ports.TokenCodec
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, codec: codec}
}

// Register validates the payload, persists the new user with a hashed secret
// and issues a token pair. Duplicate username/email surfaces as
// domain.ErrUserExists; malformed input as *domain.ValidationError.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, domain.TokenPair, error) {
	role := in.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if err := validateRegistration(in, role); err != nil {
		return nil, domain.TokenPair{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	pair, err := s.issuePair(created)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	return created, pair, nil
}

// Login authenticates by username and password. Unknown user, wrong password
// and inactive account all return domain.ErrInvalidCredentials so the caller
// cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, domain.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
		}
		return nil, domain.TokenPair{}, err
	}

	if !user.IsActive || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is echoed back unchanged; it is neither rotated nor
// invalidated, so it remains usable until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	if refreshToken == "" {
		return domain.TokenPair{}, domain.ErrTokenMissing
	}

	access, err := s.codec.Rotate(refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{Access: access, Refresh: refreshToken}, nil
}

// Profile returns the caller's own record by the id resolved from their
// access token.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// CreateSuperuser persists an administrative account. Whatever role the input
// carries, the result is role=admin with the staff and superuser flags set.
func (s *AuthService) CreateSuperuser(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.PasswordConfirm == "" {
		in.PasswordConfirm = in.Password
	}
	if err := validateRegistration(in, domain.RoleAdmin); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
		CreatedAt:    time.Now().UTC(),
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthService) issuePair(user *domain.User) (domain.TokenPair, error) {
	access, err := s.codec.IssueAccess(user)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.codec.IssueRefresh(user)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func validateRegistration(in ports.RegisterInput, role string) error {
	ve := domain.NewValidationError()

	if strings.TrimSpace(in.Username) == "" {
		ve.Add("username", "username is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		ve.Add("email", "email is required")
	} else if !strings.Contains(in.Email, "@") {
		ve.Add("email", "email must be a valid address")
	}
	if in.Password == "" {
		ve.Add("password", "password is required")
	} else if len(in.Password) < MinPasswordLength {
		ve.Add("password", "password must be at least 8 characters")
	}
	if in.Password != in.PasswordConfirm {
		ve.Add("password_confirm", "password confirmation does not match")
	}
	if !domain.ValidRole(role) {
		ve.Add("role", "role must be one of: admin, manager, sales_rep")
	}

	if ve.Empty() {
		return nil
	}
	return ve
}
