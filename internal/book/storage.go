package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"librarycatalog/internal/apperror"
)

// Storage holds the book table queries. Lookups report absence as a nil
// book, not an error.
type Storage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Add inserts a new book and returns the assigned id.
func (s *Storage) Add(ctx context.Context, b *Book) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", apperror.ErrStorage, err)
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx,
		"INSERT INTO books (title, author, description, num_pages) VALUES ($1, $2, $3, $4) RETURNING id",
		b.Title, b.Author, b.Description, b.NumPages).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: insert book: %v", apperror.ErrStorage, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", apperror.ErrStorage, err)
	}
	return id, nil
}

func (s *Storage) GetByID(ctx context.Context, id int) (*Book, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		"SELECT id, title, author, description, num_pages FROM books WHERE id = $1 LIMIT 1", id))
}

// GetByTitle returns the first book with the given title.
func (s *Storage) GetByTitle(ctx context.Context, title string) (*Book, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		"SELECT id, title, author, description, num_pages FROM books WHERE title = $1 LIMIT 1", title))
}

// GetAll returns every book in store order.
func (s *Storage) GetAll(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, author, description, num_pages FROM books")
	if err != nil {
		return nil, fmt.Errorf("%w: list books: %v", apperror.ErrStorage, err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err = rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.NumPages); err != nil {
			return nil, fmt.Errorf("%w: scan book: %v", apperror.ErrStorage, err)
		}
		books = append(books, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list books: %v", apperror.ErrStorage, err)
	}
	return books, nil
}

// RemoveByID deletes the book with the given id and reports whether a
// row was removed.
func (s *Storage) RemoveByID(ctx context.Context, id int) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%w: begin: %v", apperror.ErrStorage, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("%w: delete book: %v", apperror.ErrStorage, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: rows affected: %v", apperror.ErrStorage, err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: commit: %v", apperror.ErrStorage, err)
	}
	return removed > 0, nil
}

func (s *Storage) scanOne(row *sql.Row) (*Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.NumPages)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get book: %v", apperror.ErrStorage, err)
	}
	return &b, nil
}
