package domain

import "time"

// User is the persisted account record. The password is only ever stored as a
// bcrypt hash; PasswordHash must be non-empty once the record is saved.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleUser is the single role granted to every authenticated account.
const RoleUser = "user"

// Identity is the in-memory representation of a verified caller, derived from
// a validated token and discarded at the end of the request.
type Identity struct {
	UserID int64
	Email  string
	Roles  []string
}
