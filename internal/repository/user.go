package repository

import (
	"context"
	"errors"

	"account-server/internal/domain"
)

var (
	// ErrNotFound indicates no row matched the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail indicates an insert or update hit the unique email constraint.
	ErrDuplicateEmail = errors.New("email already taken")
)

// UserRepository defines persistence operations for User entities. The store
// must enforce email uniqueness atomically; callers may pre-check existence
// but rely on the constraint for correctness under concurrent inserts.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}
