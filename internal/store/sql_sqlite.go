package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/husarprojects/healthsync/internal/config"
	"github.com/husarprojects/healthsync/internal/logger"
)

// DB wraps the shared SQLite connection used by all agent repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (creating the file if needed) and pings the agent's
// local SQLite database.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if err := ensureDBFile(cfg.DSN); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningStore, err)
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningStore, err)
	}

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrOpeningStore, err)
	}
	log.Debug().Str("dsn", cfg.DSN).Msg("local store opened")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

// ensureDBFile creates the database file when it does not exist yet, so a
// first run on a fresh host starts from an empty store.
func ensureDBFile(dsn string) error {
	if _, err := os.Stat(dsn); os.IsNotExist(err) {
		f, createErr := os.Create(dsn)
		if createErr != nil {
			return fmt.Errorf("create database file: %w", createErr)
		}
		return f.Close()
	}
	return nil
}
