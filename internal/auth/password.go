package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts. Inputs
// beyond this make GenerateFromPassword fail, so callers must reject
// longer passwords before hashing.
const MaxPasswordBytes = 72

// Hasher hashes and verifies passwords with bcrypt. The cost is
// injected so test environments can run with a cheap work factor.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash generates a salted bcrypt hash of the password. Two calls with
// the same input produce different hashes.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the password produced the hash. It never
// returns an error: malformed hashes verify as false.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(normalizeIdent(hash)), []byte(password)) == nil
}

// normalizeIdent maps the PHP-era $2y$ bcrypt ident to $2b$ so hashes
// created by older stacks still verify. golang.org/x/crypto/bcrypt
// only accepts the 2, 2a and 2b idents.
func normalizeIdent(hash string) string {
	if strings.HasPrefix(hash, "$2y$") {
		return "$2b$" + hash[len("$2y$"):]
	}
	return hash
}
