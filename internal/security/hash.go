package security

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

// HashToken hashes a refresh token for storage. Raw tokens are never
// persisted. Tokens are digested first because bcrypt only consumes the
// first 72 bytes of its input and a signed token is longer than that.
func HashToken(token string) (string, error) {
	digest := sha256.Sum256([]byte(token))
	h, err := bcrypt.GenerateFromPassword(digest[:], bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CompareToken reports whether token matches the stored hash.
func CompareToken(hash, token string) bool {
	digest := sha256.Sum256([]byte(token))
	return bcrypt.CompareHashAndPassword([]byte(hash), digest[:]) == nil
}
