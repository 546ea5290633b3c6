// Package hasher wraps bcrypt for storing and checking user secrets.
package hasher

import "golang.org/x/crypto/bcrypt"

// Bcrypt hashes passwords with a per-hash random salt. The zero cost falls
// back to bcrypt.DefaultCost.
type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches hash. A malformed hash is a mismatch,
// not an error; bcrypt's comparison is constant-time over the digest.
func (b *Bcrypt) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
