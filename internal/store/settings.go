package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/husarprojects/healthsync/internal/logger"
)

// Well-known settings keys. Values are opaque strings; structured values are
// stored as JSON.
const (
	KeyLogin         = "login"         // access token
	KeyRefreshToken  = "refreshToken"  // refresh token
	KeyAPIBase       = "apiBase"       // sync server base URL
	KeyTaskDelay     = "taskDelay"     // sync interval, milliseconds, decimal string
	KeyLastSync      = "lastSync"      // sync cursor, RFC 3339
	KeyFullSyncMode  = "fullSyncMode"  // "true"/"false"
	KeySentryEnabled = "sentryEnabled" // "true"/"false"
)

const (
	upsertSetting = `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`

	getSetting = `SELECT value FROM settings WHERE key = ?;`

	deleteSetting = `DELETE FROM settings WHERE key = ?;`
)

// settingsRepository is the SQLite-backed implementation of
// [SettingsRepository]. Every write is a single synchronous upsert; there is
// no cross-key transaction.
type settingsRepository struct {
	*DB
	logger *logger.Logger
}

// NewSettingsRepository constructs a [SettingsRepository] backed by the
// provided database connection and logger.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	return &settingsRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *settingsRepository) SetStructured(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}
	return s.SetPlain(ctx, key, string(payload))
}

func (s *settingsRepository) SetPlain(ctx context.Context, key, value string) error {
	if _, err := s.ExecContext(ctx, upsertSetting, key, value); err != nil {
		s.logger.Err(err).Str("key", key).Msg("failed to persist setting")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *settingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.QueryRowContext(ctx, getSetting, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, true, nil
}

func (s *settingsRepository) GetStructured(ctx context.Context, key string, out any) (bool, error) {
	value, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err = json.Unmarshal([]byte(value), out); err != nil {
		return true, fmt.Errorf("decode setting %q: %w", key, err)
	}
	return true, nil
}

func (s *settingsRepository) Delete(ctx context.Context, key string) error {
	if _, err := s.ExecContext(ctx, deleteSetting, key); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}
