package security

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AccessTokenGuard verifies bearer tokens presented to the dashboard.
// Only the bcrypt hash of the configured token is held in memory, so a heap
// dump or accidental log of the guard never exposes the token itself.
type AccessTokenGuard struct {
	hash []byte
}

// NewAccessTokenGuard creates a guard for the given plaintext token.
// The token is hashed immediately and the plaintext discarded.
func NewAccessTokenGuard(token string) (*AccessTokenGuard, error) {
	if token == "" {
		return nil, fmt.Errorf("access token must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash access token: %w", err)
	}
	return &AccessTokenGuard{hash: hash}, nil
}

// NewAccessTokenGuardFromHash creates a guard from a pre-computed bcrypt
// hash, e.g. one read from configuration so the plaintext never touches the
// process at all.
func NewAccessTokenGuardFromHash(hash string) (*AccessTokenGuard, error) {
	if hash == "" {
		return nil, fmt.Errorf("access token hash must not be empty")
	}
	// Reject values that are clearly not bcrypt hashes to catch operators
	// configuring the plaintext token in the hash field.
	if !strings.HasPrefix(hash, "$2") {
		return nil, fmt.Errorf("access token hash is not a bcrypt hash")
	}
	return &AccessTokenGuard{hash: []byte(hash)}, nil
}

// Verify checks a presented token against the stored hash.
func (g *AccessTokenGuard) Verify(token string) bool {
	return bcrypt.CompareHashAndPassword(g.hash, []byte(token)) == nil
}

// VerifyRequest extracts the bearer token from the Authorization header and
// verifies it. Missing or malformed headers fail verification.
func (g *AccessTokenGuard) VerifyRequest(r *http.Request) bool {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return false
	}
	return g.Verify(parts[1])
}
