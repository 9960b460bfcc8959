package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
)

type usersRepo struct {
	db *sql.DB
}

const getUserByUsername = `
SELECT id, username, password_hash, finance_entries, created_at, updated_at
FROM users
WHERE username = ?`

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var (
		u       domain.User
		entries string
	)
	err := r.db.QueryRowContext(ctx, getUserByUsername, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&entries,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.FinanceEntries, err = decodeEntries(entries)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

const createUser = `
INSERT INTO users (id, username, password_hash, finance_entries, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	entries, err := encodeEntries(u.FinanceEntries)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	_, err = r.db.ExecContext(ctx, createUser,
		u.ID,
		u.Username,
		u.PasswordHash,
		entries,
		u.CreatedAt.UTC(),
		u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

const saveUser = `
UPDATE users
SET finance_entries = ?, updated_at = ?
WHERE id = ?`

func (r *usersRepo) SaveUser(ctx context.Context, u domain.User) error {
	entries, err := encodeEntries(u.FinanceEntries)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, saveUser, entries, time.Now().UTC(), u.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
