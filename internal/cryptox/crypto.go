// Package cryptox implements the password-verifier scheme used for accounts:
// the server stores a random salt plus an argon2id digest, never the password.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// DeriveVerifier computes the argon2id digest of password under salt.
func DeriveVerifier(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword reports whether the candidate password matches the stored
// verifier. The comparison is constant-time.
func VerifyPassword(password, salt, verifier []byte) bool {
	candidate := DeriveVerifier(password, salt)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
