package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"teacher@school.edu", true},
		{"first.last@example.com", true},
		{"a+tag@sub.domain.org", true},
		{"UPPER@school.edu", false}, // lowercase only by rule
		{"missing-at.example.com", false},
		{"user@", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "letters and digits", password: "passw0rd", want: true},
		{name: "exactly min length", password: "abcdefg1", want: true},
		{name: "too short", password: "abc1", want: false},
		{name: "digits only", password: "12345678", want: false},
		{name: "letters only", password: "abcdefgh", want: false},
		{name: "empty", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password))
		})
	}
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Ms"))
	assert.True(t, IsValidName("Algebra I"))
	assert.False(t, IsValidName("A"))
	assert.False(t, IsValidName(""))
}
