package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store is the user repository. Emails are unique ignoring case, ids are
// assigned by the store and never reused.
type Store interface {
	Create(ctx context.Context, in NewUser) (User, error)
	FindByID(ctx context.Context, id uint64) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// List returns users in insertion order.
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uint64, p Patch) (User, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id uint64) (bool, error)
}
