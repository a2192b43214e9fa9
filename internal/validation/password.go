// Package validation contains input validation rules for user-supplied
// identity fields.
package validation

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordRunes = 12
	maxPasswordRunes = 128
	maxEmailLength   = 254
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{1,28}[A-Za-z0-9]$`)
	emailRegex    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*$`)
)

// ValidatePassword enforces length bounds and character-class requirements.
func ValidatePassword(password string) error {
	runes := utf8.RuneCountInString(password)
	if runes < minPasswordRunes {
		return fmt.Errorf("password must be at least %d characters", minPasswordRunes)
	}
	if runes > maxPasswordRunes {
		return fmt.Errorf("password must be at most %d characters", maxPasswordRunes)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain upper and lower case letters, a digit, and a special character")
	}
	return nil
}

// ValidateUsername enforces 3-30 characters, alphanumeric with inner dashes
// and underscores only.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-30 characters, start and end with a letter or digit, and contain only letters, digits, dashes, and underscores")
	}
	return nil
}

// ValidateEmail enforces a single @, a dotted domain without a trailing dot,
// and the RFC length ceiling.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLength {
		return fmt.Errorf("email must be at most %d characters", maxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}
