package book

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarycatalog/internal/apperror"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStorage(db), mock
}

func bookRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "author", "description", "num_pages"})
}

func TestAddBookAssignsID(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO books").
		WithArgs("Dune", "Herbert", "desc", 412).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	id, err := storage.Add(context.Background(), &Book{
		Title: "Dune", Author: "Herbert", Description: "desc", NumPages: 412,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDReturnsAllFields(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT id, title, author, description, num_pages FROM books WHERE id").
		WithArgs(3).
		WillReturnRows(bookRows().AddRow(3, "Dune", "Herbert", "desc", 412))

	b, err := storage.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, Book{ID: 3, Title: "Dune", Author: "Herbert", Description: "desc", NumPages: 412}, *b)
}

func TestGetByIDAbsenceIsNotAnError(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT id, title, author, description, num_pages FROM books WHERE id").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	b, err := storage.GetByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestGetByTitle(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT id, title, author, description, num_pages FROM books WHERE title").
		WithArgs("Dune").
		WillReturnRows(bookRows().AddRow(3, "Dune", "Herbert", "desc", 412))

	b, err := storage.GetByTitle(context.Background(), "Dune")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 3, b.ID)
}

func TestGetAllReturnsEveryBook(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT id, title, author, description, num_pages FROM books").
		WillReturnRows(bookRows().
			AddRow(1, "Dune", "Herbert", "desc", 412).
			AddRow(2, "Solaris", "Lem", "ocean", 204))

	books, err := storage.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestGetAllEmptyTable(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT id, title, author, description, num_pages FROM books").
		WillReturnRows(bookRows())

	books, err := storage.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRemoveByIDReportsWhetherARowWasRemoved(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM books WHERE id").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := storage.RemoveByID(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, removed)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM books WHERE id").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err = storage.RemoveByID(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT id, title, author, description, num_pages FROM books").
		WillReturnError(errors.New("connection refused"))

	_, err := storage.GetAll(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrStorage))
}
