// Package validation holds the field rules shared by services and seed data.
package validation

import (
	"regexp"
	"unicode"
)

// Validation rule constants
var (
	// EmailPattern matches the account email format accepted at registration
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// PasswordMinLength is the minimum password length
	PasswordMinLength = 8

	// Name length bounds for first/last names and class/lesson titles
	NameMinLength = 2
	NameMaxLength = 100

	// Free-text content caps
	QuestionMaxLength = 2000
	FeedbackMaxLength = 5000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// IsValidEmail reports whether the email matches the accepted format
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidPassword reports whether the password meets the minimum rules:
// at least PasswordMinLength characters with at least one letter and one digit.
func IsValidPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}

// IsValidName reports whether a personal or title name fits the length bounds
func IsValidName(name string) bool {
	return len(name) >= NameMinLength && len(name) <= NameMaxLength
}
