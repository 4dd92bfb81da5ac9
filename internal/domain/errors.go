package domain

import "errors"

// Business errors surfaced by the services. Callers dispatch with errors.Is;
// validation errors wrap these sentinels together with the failing rule text.
var (
	// ErrInvalidEmail indicates the email is empty or not syntactically valid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidPassword indicates the password violates a strength rule.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidName indicates the name is blank or too short.
	ErrInvalidName = errors.New("invalid name")
	// ErrEmailExists is returned when registering or updating to an email already in use.
	ErrEmailExists = errors.New("email already in use")
	// ErrUserNotFound indicates no account exists for the given email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrBadCredentials indicates the supplied password does not match the stored hash.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrTokenInvalid covers expired, malformed, unsigned and unsupported tokens.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrIllegalInput indicates an empty token was passed where a parsed one was expected.
	ErrIllegalInput = errors.New("token is empty")
)
