// Package joincode generates the short codes students use to join a class.
package joincode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Alphabet is the set of characters a join code is drawn from
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length is the fixed length of a join code
	Length = 6

	// DefaultMaxAttempts bounds the collision retry loop. The code space is
	// 36^6 (~2.2 billion), so hitting this bound means something is wrong
	// with the uniqueness check rather than bad luck.
	DefaultMaxAttempts = 10
)

// ErrSpaceExhausted is returned when no unique code was found within the attempt bound
var ErrSpaceExhausted = errors.New("could not find an unused join code")

// ExistsFunc reports whether a candidate code is already taken
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator produces unique join codes with a bounded retry loop
type Generator struct {
	maxAttempts int
}

// NewGenerator creates a Generator with the default attempt bound
func NewGenerator() *Generator {
	return &Generator{maxAttempts: DefaultMaxAttempts}
}

// NewGeneratorWithAttempts creates a Generator with a custom attempt bound
func NewGeneratorWithAttempts(maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{maxAttempts: maxAttempts}
}

// Generate draws random codes until one passes the exists check, up to the
// attempt bound. Returns ErrSpaceExhausted if every attempt collided.
func (g *Generator) Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code, err := New()
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", ErrSpaceExhausted
}

// New returns a single random join code without any uniqueness guarantee
func New() (string, error) {
	var sb strings.Builder
	sb.Grow(Length)

	max := big.NewInt(int64(len(Alphabet)))
	for i := 0; i < Length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw random join code character: %w", err)
		}
		sb.WriteByte(Alphabet[n.Int64()])
	}

	return sb.String(), nil
}

// Normalize uppercases and trims a user-supplied code so lookups are
// insensitive to how the student typed it.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValid reports whether a string has the shape of a join code
func IsValid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(Alphabet, rune(code[i])) {
			return false
		}
	}
	return true
}
