// Package impl contains the implementation of the application's business logic.
package impl

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"identity/internal/errors"
)

const opaqueTokenBytes = 32

// newOpaqueToken returns a random token for the client and the hash to persist.
func newOpaqueToken() (token, hash string, err error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", errors.Wrap(err, "failed to read random bytes")
	}
	token = hex.EncodeToString(buf)

	return token, hashOpaqueToken(token), nil
}

// hashOpaqueToken is the lookup key stored for a token.
func hashOpaqueToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
