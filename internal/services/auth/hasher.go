package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes passwords for storage and verifies login attempts
type PasswordHasher interface {
	// Hash produces a salted digest of the plaintext password
	Hash(password string) (string, error)
	// Verify reports whether the plaintext password matches the digest
	Verify(password, digest string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt
type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a BcryptHasher at the default cost
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash produces a salted bcrypt digest. Hashing the same password twice
// yields different digests because each call draws a fresh salt.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the password matches the digest.
// Malformed digests verify as false rather than erroring.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
