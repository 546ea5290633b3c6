package ports

import (
	"time"

	"github.com/team9/crm-auth/internal/core/domain"
)

// TokenClaims is the verified content of a token, decoupled from the JWT
// wire representation.
type TokenClaims struct {
	UserID    string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec issues and verifies self-contained signed tokens. Access and
// refresh tokens use independent keys and TTLs; each carries a type claim so
// one can never stand in for the other.
type TokenCodec interface {
	IssueAccess(user *domain.User) (string, error)
	IssueRefresh(user *domain.User) (string, error)
	VerifyAccess(raw string) (*TokenClaims, error)
	// Rotate validates a refresh token and mints a fresh access token for
	// the same subject. The refresh token itself is left untouched.
	Rotate(raw string) (string, error)
}
