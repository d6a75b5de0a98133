package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"librarycatalog/internal/apperror"
)

// Storage holds the user table queries. Every call runs against its own
// short-lived connection or transaction and releases it before returning.
type Storage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Add inserts a new user and returns the assigned id.
func (s *Storage) Add(ctx context.Context, u *User) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", apperror.ErrStorage, err)
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		u.Username, u.Password).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: insert user: %v", apperror.ErrStorage, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", apperror.ErrStorage, err)
	}
	return id, nil
}

// GetByUsername returns the first user with the given username, or nil
// if there is none.
func (s *Storage) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password FROM users WHERE username = $1 LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get user by username: %v", apperror.ErrStorage, err)
	}
	return &u, nil
}

// GetByUsernameAndPassword is an exact-match lookup on both columns. The
// login flow verifies hashes application-side instead, but the primitive
// stays available.
func (s *Storage) GetByUsernameAndPassword(ctx context.Context, username, hashedPassword string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password FROM users WHERE username = $1 AND password = $2 LIMIT 1",
		username, hashedPassword).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get user by username and password: %v", apperror.ErrStorage, err)
	}
	return &u, nil
}

func (s *Storage) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = $1", username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: count users: %v", apperror.ErrStorage, err)
	}
	return count > 0, nil
}
