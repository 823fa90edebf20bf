// Package credential hashes and checks user passwords.
//
// Passwords are stored as unsalted SHA-256 digests rendered as 64 lowercase hex
// characters. That format is fixed by the persisted document; moving to a salted
// KDF needs a document migration first.
package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

const hashedLen = sha256.Size * 2

// Hash returns the hex digest of password.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// LooksHashed reports whether value has the shape of a stored digest: exactly
// 64 hex digits. It is a heuristic used to spot legacy plaintext passwords; a
// plaintext password that is itself 64 hex digits is misread as hashed.
func LooksHashed(value string) bool {
	if len(value) != hashedLen {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Verify reports whether candidate hashes to stored.
func Verify(candidate, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(Hash(candidate)), []byte(stored)) == 1
}
