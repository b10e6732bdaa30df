package joincode

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeShape(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		code, err := New()
		require.NoError(t, err)

		assert.Len(t, code, Length)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected character %q in code %s", r, code)
		}

		assert.False(t, seen[code], "duplicate code %s drawn from a 36^6 space", code)
		seen[code] = true
	}
}

func TestGenerateReturnsFirstFreeCode(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		calls++
		return calls < 3, nil // first two candidates collide
	}

	code, err := NewGenerator().Generate(context.Background(), exists)
	require.NoError(t, err)
	assert.Len(t, code, Length)
	assert.Equal(t, 3, calls)
}

func TestGenerateBoundedRetry(t *testing.T) {
	calls := 0
	alwaysTaken := func(ctx context.Context, code string) (bool, error) {
		calls++
		return true, nil
	}

	code, err := NewGenerator().Generate(context.Background(), alwaysTaken)
	assert.Empty(t, code)
	assert.ErrorIs(t, err, ErrSpaceExhausted)
	assert.Equal(t, DefaultMaxAttempts, calls)
}

func TestGenerateCustomAttemptBound(t *testing.T) {
	calls := 0
	alwaysTaken := func(ctx context.Context, code string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := NewGeneratorWithAttempts(3).Generate(context.Background(), alwaysTaken)
	assert.ErrorIs(t, err, ErrSpaceExhausted)
	assert.Equal(t, 3, calls)
}

func TestGeneratePropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("connection refused")
	exists := func(ctx context.Context, code string) (bool, error) {
		return false, lookupErr
	}

	_, err := NewGenerator().Generate(context.Background(), exists)
	assert.ErrorIs(t, err, lookupErr)
}

func TestGenerateHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exists := func(ctx context.Context, code string) (bool, error) {
		t.Fatal("exists should not be called after cancellation")
		return false, nil
	}

	_, err := NewGenerator().Generate(ctx, exists)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "valid uppercase", code: "AB12CD", want: true},
		{name: "valid all letters", code: "ABCDEF", want: true},
		{name: "valid all digits", code: "123456", want: true},
		{name: "too short", code: "AB12C", want: false},
		{name: "too long", code: "AB12CDE", want: false},
		{name: "lowercase rejected", code: "ab12cd", want: false},
		{name: "symbol rejected", code: "AB12C!", want: false},
		{name: "empty", code: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.code))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "ab12cd", want: "AB12CD"},
		{in: "  AB12CD ", want: "AB12CD"},
		{in: "aB12cD", want: "AB12CD"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}
