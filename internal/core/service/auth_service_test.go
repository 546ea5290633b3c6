package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/team9/crm-auth/internal/core/domain"
	"github.com/team9/crm-auth/internal/core/ports"
	"github.com/team9/crm-auth/internal/core/token"
	"github.com/team9/crm-auth/pkg/hasher"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Exists(_ context.Context, usernameOrEmail string) (bool, error) {
	for _, u := range r.users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(repo *stubUserRepo) (*AuthService, *token.Codec) {
	codec := token.NewCodec(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
	return NewAuthService(repo, hasher.NewBcrypt(4), codec), codec
}

func registration(username string) ports.RegisterInput {
	return ports.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "testpass123",
		PasswordConfirm: "testpass123",
		FirstName:       "Test",
		LastName:        "User",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newTestService(repo)

	user, pair, err := svc.Register(context.Background(), registration("alice"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Role != domain.RoleSalesRep {
		t.Fatalf("expected default role %s, got %s", domain.RoleSalesRep, user.Role)
	}
	if !user.IsActive {
		t.Fatalf("new users must be active")
	}
	if user.PasswordHash == "testpass123" {
		t.Fatalf("expected password to be hashed")
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one persisted user, got %d", len(repo.users))
	}

	claims, err := codec.VerifyAccess(pair.Access)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("access token subject %s, want %s", claims.UserID, user.ID)
	}
}

func TestAuthService_Register_ExplicitRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	in := registration("bob")
	in.Role = domain.RoleManager
	user, _, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleManager {
		t.Fatalf("expected role %s, got %s", domain.RoleManager, user.Role)
	}
}

func TestAuthService_Register_ConfirmMismatch(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	in := registration("carol")
	in.PasswordConfirm = "different123"
	_, _, err := svc.Register(context.Background(), in)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["password_confirm"]; !ok {
		t.Fatalf("expected password_confirm field error, got %v", ve.Fields)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user may be created on validation failure")
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	in := registration("dave")
	in.Role = "superhero"
	_, _, err := svc.Register(context.Background(), in)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["role"]; !ok {
		t.Fatalf("expected role field error, got %v", ve.Fields)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, _, err := svc.Register(context.Background(), registration("erin")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same username, different email: still a collision.
	in := registration("erin")
	in.Email = "erin2@example.com"
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected one user after duplicate rejection, got %d", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newTestService(repo)

	created, _, err := svc.Register(context.Background(), registration("frank"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, pair, err := svc.Login(context.Background(), "frank", "testpass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := codec.VerifyAccess(pair.Access)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.UserID != created.ID {
		t.Fatalf("token subject %s, want %s", claims.UserID, created.ID)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	created, _, err := svc.Register(context.Background(), registration("grace"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users[created.ID].IsActive = false

	cases := map[string]struct {
		username string
		password string
	}{
		"wrong password":   {"grace", "wrongpass123"},
		"unknown user":     {"ghost", "testpass123"},
		"inactive account": {"grace", "testpass123"},
	}
	for name, tc := range cases {
		if _, _, err := svc.Login(context.Background(), tc.username, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newTestService(repo)

	created, pair, err := svc.Register(context.Background(), registration("heidi"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	out, err := svc.Refresh(context.Background(), pair.Refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if out.Refresh != pair.Refresh {
		t.Fatalf("refresh token must be echoed back unchanged")
	}

	claims, err := codec.VerifyAccess(out.Access)
	if err != nil {
		t.Fatalf("minted access token invalid: %v", err)
	}
	if claims.UserID != created.ID {
		t.Fatalf("token subject %s, want %s", claims.UserID, created.ID)
	}
}

func TestAuthService_Refresh_Missing(t *testing.T) {
	svc, _ := newTestService(newStubUserRepo())

	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, domain.ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestAuthService_Refresh_Invalid(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	_, pair, err := svc.Register(context.Background(), registration("ivan"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
	// An access token must not pass the refresh path.
	if _, err := svc.Refresh(context.Background(), pair.Access); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for access-as-refresh, got %v", err)
	}
}

func TestAuthService_CreateSuperuser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	in := registration("root")
	in.Role = domain.RoleSalesRep // must be overridden
	user, err := svc.CreateSuperuser(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateSuperuser returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %s", domain.RoleAdmin, user.Role)
	}
	if !user.IsStaff || !user.IsSuperuser {
		t.Fatalf("expected staff and superuser flags set, got %+v", user)
	}
}

func TestAuthService_Profile(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	created, _, err := svc.Register(context.Background(), registration("judy"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Profile(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if user.Username != "judy" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Profile(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
