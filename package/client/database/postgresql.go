package database

import (
	"database/sql"
	"fmt"
	_ "github.com/lib/pq"
	"librarycatalog/internal/config"
	"librarycatalog/package/logger"
)

func Init(config *config.Config) *sql.DB {
	logger.Log.Info(fmt.Sprintf("Connecting to host=%s port=%d user=%s dbname=%s",
		config.Storage.Host, config.Storage.Port, config.Storage.Username, config.Storage.Database))
	psqlconn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Storage.Host, config.Storage.Port, config.Storage.Username, config.Storage.Password, config.Storage.Database)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		logger.Log.Error(err)
		logger.Log.Fatal("Can not connect to database")
	}

	if err = db.Ping(); err != nil {
		logger.Log.Error(err)
		logger.Log.Fatal("Can not reach database")
	}

	logger.Log.Info("Connected to database")
	return db
}

// CreateSchema creates the two catalog tables. Creating a table that
// already exists is an error and is returned to the caller.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(`
        CREATE TABLE users (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL,
            password TEXT NOT NULL
        )`); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	if _, err := db.Exec(`
        CREATE TABLE books (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            description TEXT NOT NULL,
            num_pages INTEGER NOT NULL
        )`); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}

	return nil
}

func DropSchema(db *sql.DB) error {
	if _, err := db.Exec(`DROP TABLE books`); err != nil {
		return fmt.Errorf("drop books table: %w", err)
	}
	if _, err := db.Exec(`DROP TABLE users`); err != nil {
		return fmt.Errorf("drop users table: %w", err)
	}
	return nil
}
