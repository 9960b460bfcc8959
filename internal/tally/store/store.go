package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (mongo, sqlite)
// implement this and expose sub-repositories so each concern stays small.
//
// There are no transactions: every mutation is a read-modify-write of the
// whole user document and the later write wins.
type Store interface {
	Users() Users

	// ApplyMigrations brings the schema (tables or indexes) up to date.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByUsername returns the user and its finance entries.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// SaveUser replaces the stored finance entries of u and bumps updated_at.
	// ErrNotFound when u.ID no longer exists.
	SaveUser(ctx context.Context, u domain.User) error
}
