// Package shareid generates the short URL-safe tokens used for public
// summary links.
package shareid

import (
	"crypto/rand"
	"fmt"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	// Length gives ~60 bits of entropy, enough that collisions are handled
	// by the unique index rather than expected in practice.
	Length = 10
)

// New returns a fresh random share token.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("shareid: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
