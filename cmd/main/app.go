package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/lib/pq"

	"librarycatalog/internal/auth"
	"librarycatalog/internal/book"
	"librarycatalog/internal/config"
	"librarycatalog/internal/user"
	"librarycatalog/package/client/database"
	"librarycatalog/package/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug("No .env file loaded")
	}

	cfg := config.GetConfig()

	logger.Log.Info("Starting database")
	db := database.Init(cfg)

	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Log.Error("Can not close database")
		}
	}(db)

	ensureSchema(db)

	authService, err := auth.NewService(cfg.Auth.SecretKey, cfg.Auth.Algorithm,
		time.Duration(cfg.Auth.TTLMinutes)*time.Minute)
	if err != nil {
		logger.Log.Fatal(err)
	}

	router := httprouter.New()
	user.NewHandler(user.NewStorage(db), authService).Register(router)
	book.NewHandler(book.NewStorage(db), authService).Register(router)

	logger.Log.Info("Starting app")
	start(router, cfg)
}

// ensureSchema creates the tables on first start. A schema that is
// already in place is not an error; anything else is fatal.
func ensureSchema(db *sql.DB) {
	if err := database.CreateSchema(db); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "duplicate_table" {
			logger.Log.Info("Schema already present")
			return
		}
		logger.Log.Fatal(err)
	}
	logger.Log.Info("Schema created")
}

func start(router *httprouter.Router, cfg *config.Config) {
	logger.Log.Info("Starting router")
	logger.Log.Info("Listening TCP")
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.Listen.BindIp, cfg.Listen.Port))
	logger.Log.Info("Listening ", fmt.Sprintf("%s:%s", cfg.Listen.BindIp, cfg.Listen.Port))

	if err != nil {
		logger.Log.Fatal("Listener was not created")
		panic(err)
	}
	server := &http.Server{
		Handler:      router,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	err = server.Serve(listener)
	if err != nil {
		logger.Log.Fatal("Server was not created")
		panic(err)
	}
}
