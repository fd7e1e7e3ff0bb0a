// Package storage declares the contract every storage backend of the
// application must satisfy.
package storage

import (
	"context"

	"github.com/patric-chuzhbe/usersvc/internal/user"
)

// Storage is the keyed user store behind the service layer.
// Lookup methods report absence through the boolean result, not through an
// error. SaveUser is an upsert: a zero ID means insert and assigns a fresh
// id, a non-zero ID replaces the stored record.
type Storage interface {
	FindAll(ctx context.Context) ([]user.User, error)

	FindByActive(ctx context.Context, active bool) ([]user.User, error)

	FindByID(ctx context.Context, id int64) (*user.User, bool, error)

	FindByUsername(ctx context.Context, username string) (*user.User, bool, error)

	IsUsernameExists(ctx context.Context, username string) (bool, error)

	IsEmailExists(ctx context.Context, email string) (bool, error)

	IsUserExists(ctx context.Context, id int64) (bool, error)

	SaveUser(ctx context.Context, usr *user.User) (*user.User, error)

	DeleteUser(ctx context.Context, id int64) error

	Ping(ctx context.Context) error

	Close() error
}
