// Package generator produces random candidate passwords.
package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/dmitrijs2005/passkeeper/internal/common"
)

// Alphabet is the character set candidates are drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!@#$%^&*()_+-=[]{}|;:,.<>?"

const (
	DefaultLength = 16
	MaxLength     = 256
)

// randReader is a test seam for crypto/rand.Reader.
var randReader io.Reader = rand.Reader

// Generate returns a password of the given length. A zero length selects
// DefaultLength. Each character is an independent uniform draw; rand.Int
// rejects out-of-range samples, so there is no modulo bias.
func Generate(length int) (string, error) {
	if length == 0 {
		length = DefaultLength
	}
	if length < 0 || length > MaxLength {
		return "", fmt.Errorf("%w: length must be between 1 and %d", common.ErrValidation, MaxLength)
	}

	size := big.NewInt(int64(len(Alphabet)))
	out := make([]byte, length)

	for i := range out {
		idx, err := rand.Int(randReader, size)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		out[i] = Alphabet[idx.Int64()]
	}

	return string(out), nil
}
