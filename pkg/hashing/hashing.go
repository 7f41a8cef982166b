package hashing

import "golang.org/x/crypto/bcrypt"

// Hasher is a one-way hash/verify pair for stored passwords.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, digest string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcrypt creates a bcrypt-backed Hasher. A cost below bcrypt.MinCost
// falls back to bcrypt.DefaultCost.
func NewBcrypt(cost int) Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare reports whether plaintext matches digest. A malformed digest
// reports false rather than an ambiguous success.
func (h *bcryptHasher) Compare(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
