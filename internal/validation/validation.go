// Package validation holds the field-level rules applied to registration and
// profile input. Each check is a pure function returning nil when the value is
// valid, or an error wrapping the matching domain sentinel with the first rule
// that failed. Rule order is fixed and callers rely on it.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"account-server/internal/domain"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 32
	minNameLength     = 2
)

var validate = validator.New()

// Email checks that the address is non-blank and syntactically valid.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email must not be empty", domain.ErrInvalidEmail)
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("%w: %q is not a valid email address", domain.ErrInvalidEmail, email)
	}
	return nil
}

// Password enforces the strength rules in order: non-empty, length bounds,
// then character classes. The first failing rule wins; a short password missing
// a digit reports the length, not the digit.
func Password(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", domain.ErrInvalidPassword)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidPassword, minPasswordLength)
	}
	if utf8.RuneCountInString(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d characters", domain.ErrInvalidPassword, maxPasswordLength)
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

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: password must contain an uppercase letter", domain.ErrInvalidPassword)
	case !hasLower:
		return fmt.Errorf("%w: password must contain a lowercase letter", domain.ErrInvalidPassword)
	case !hasDigit:
		return fmt.Errorf("%w: password must contain a digit", domain.ErrInvalidPassword)
	case !hasSpecial:
		return fmt.Errorf("%w: password must contain a special character", domain.ErrInvalidPassword)
	}
	return nil
}

// Name checks that the trimmed name is present and at least two characters.
func Name(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: name must not be empty", domain.ErrInvalidName)
	}
	if utf8.RuneCountInString(trimmed) < minNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", domain.ErrInvalidName, minNameLength)
	}
	return nil
}
