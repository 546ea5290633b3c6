package ports

// PasswordHasher is a one-way hash over user secrets. Verify must treat a
// malformed stored hash as a mismatch, never as an error.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
