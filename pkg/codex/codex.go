// Package codex holds the small credential-adjacent helpers: reset-code
// generation and the hex digest used for the superuser secret comparison.
package codex

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ErrInvalidLength reports a non-positive code length.
var ErrInvalidLength = errors.New("codex: code length must be positive")

// GenerateCode returns a random alphanumeric code of the given length,
// suitable for password-reset emails.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", fmt.Errorf("codex: failed to generate code: %w", err)
		}
		code[i] = codeCharset[n.Int64()]
	}
	return string(code), nil
}

// DigestHex returns the lowercase hex SHA-256 digest of s. Clients submit
// credentials pre-digested in this form.
func DigestHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
