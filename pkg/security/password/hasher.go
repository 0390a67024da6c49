package password

import "golang.org/x/crypto/bcrypt"

// Hasher produces and verifies salted bcrypt password hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost.
// Costs outside bcrypt's valid range fall back to the default (10).
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// NewDefaultHasher returns a Hasher with bcrypt's default cost.
func NewDefaultHasher() *Hasher { return NewHasher(bcrypt.DefaultCost) }

func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is
// treated the same as a wrong password.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
