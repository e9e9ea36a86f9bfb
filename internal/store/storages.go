package store

import (
	"context"
	"fmt"

	"github.com/husarprojects/healthsync/internal/config"
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/migrations"
)

// AgentStorages groups the agent's local repositories into a single value
// that can be passed around the service layer.
type AgentStorages struct {
	// Settings is the SQLite-backed key-value store for session tokens,
	// the sync cursor, and feature flags.
	Settings SettingsRepository

	// HealthRecords is the SQLite-backed stand-in for the device health
	// database.
	HealthRecords HealthRecordRepository
}

// NewAgentStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations.
//  3. Constructs and returns an [AgentStorages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewAgentStorages(cfg config.Storage, logger *logger.Logger) (*AgentStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := migrations.Migrate(db.DB); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &AgentStorages{
		Settings:      NewSettingsRepository(db, logger),
		HealthRecords: NewHealthRecordRepository(db, logger),
	}, nil
}
