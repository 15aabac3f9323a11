// Package randtoken generates opaque bearer tokens from a cryptographically
// secure source.
package randtoken

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// New returns a random alphanumeric string of the given length. A 25-char
// token carries about 149 bits of entropy. Bytes outside the largest
// multiple of len(alphabet) are rejected to keep the draw uniform.
func New(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}

	const maxAccepted = byte(248) // 4 * len(alphabet)

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes failed: %w", err)
		}
		for _, b := range buf {
			if b >= maxAccepted {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}
