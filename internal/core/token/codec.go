// Package token implements the JWT codec for access and refresh tokens.
//
// Tokens are self-contained HS256-signed claim sets; verification needs no
// store lookup. Access and refresh tokens are signed with independent secrets
// and discriminated by a token_type claim, so a refresh token can never be
// presented as an access token or vice versa.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/team9/crm-auth/internal/core/domain"
	"github.com/team9/crm-auth/internal/core/ports"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"

	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Config is built once at startup and never mutated afterwards; the codec
// copies what it needs, so concurrent reads are safe without locking.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

type claims struct {
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Codec issues and verifies token pairs. Safe for concurrent use.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func NewCodec(cfg Config) *Codec {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Codec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        cfg.Issuer,
	}
}

// IssueAccess mints a short-lived access token carrying the user's id and role.
func (c *Codec) IssueAccess(user *domain.User) (string, error) {
	return c.sign(user, typeAccess, c.accessSecret, c.accessTTL)
}

// IssueRefresh mints a longer-lived refresh token for the same subject.
func (c *Codec) IssueRefresh(user *domain.User) (string, error) {
	return c.sign(user, typeRefresh, c.refreshSecret, c.refreshTTL)
}

func (c *Codec) sign(user *domain.User, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	cl := claims{
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(secret)
}

// VerifyAccess parses and validates an access token.
func (c *Codec) VerifyAccess(raw string) (*ports.TokenClaims, error) {
	return c.verify(raw, c.accessSecret, typeAccess)
}

// VerifyRefresh parses and validates a refresh token.
func (c *Codec) VerifyRefresh(raw string) (*ports.TokenClaims, error) {
	return c.verify(raw, c.refreshSecret, typeRefresh)
}

// Rotate validates a refresh token and mints a new access token for its
// subject. The refresh token is returned to the caller unchanged elsewhere;
// it is not invalidated here.
func (c *Codec) Rotate(raw string) (string, error) {
	cl, err := c.VerifyRefresh(raw)
	if err != nil {
		return "", err
	}
	return c.IssueAccess(&domain.User{ID: cl.UserID, Role: cl.Role})
}

func (c *Codec) verify(raw string, secret []byte, wantType string) (*ports.TokenClaims, error) {
	cl := &claims{}
	tkn, err := jwt.ParseWithClaims(raw, cl, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid || cl.TokenType != wantType || cl.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	if c.issuer != "" && cl.Issuer != c.issuer {
		return nil, domain.ErrTokenInvalid
	}

	out := &ports.TokenClaims{
		UserID: cl.Subject,
		Role:   cl.Role,
	}
	if cl.IssuedAt != nil {
		out.IssuedAt = cl.IssuedAt.Time
	}
	if cl.ExpiresAt != nil {
		out.ExpiresAt = cl.ExpiresAt.Time
	}
	return out, nil
}
