package service

import (
	"context"
	"fmt"

	"github.com/husarprojects/healthsync/internal/adapter"
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/notify"
	"github.com/husarprojects/healthsync/internal/store"
)

type tokenService struct {
	settings store.SettingsRepository
	adapter  adapter.SyncServerAdapter
	notifier notify.Notifier
	logger   *logger.Logger
}

// NewTokenService builds the token lifecycle manager. It owns the Session:
// every other component only reads the token mirrored into the adapter.
func NewTokenService(storages *store.AgentStorages, serverAdapter adapter.SyncServerAdapter, notifier notify.Notifier, log *logger.Logger) TokenService {
	return &tokenService{
		settings: storages.Settings,
		adapter:  serverAdapter,
		notifier: notifier,
		logger:   log,
	}
}

// RefreshOnce performs one refresh tick. Without a stored refresh token it
// is a no-op. On success both tokens are persisted and the in-memory session
// mirrored. On any failure the session is cleared entirely: the user is
// logged out silently and the next login is manual. No retry happens before
// the next scheduled tick.
func (t *tokenService) RefreshOnce(ctx context.Context) error {
	refreshToken, ok, err := t.settings.Get(ctx, store.KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("load refresh token: %w", err)
	}
	if !ok || refreshToken == "" {
		return nil
	}

	session, err := t.adapter.Refresh(ctx, refreshToken)
	if err != nil {
		t.logger.Err(err).Msg("token refresh failed, clearing session")
		t.clearSession(ctx)
		return fmt.Errorf("refresh token: %w", err)
	}

	if err = t.settings.SetPlain(ctx, store.KeyLogin, session.AccessToken); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if err = t.settings.SetPlain(ctx, store.KeyRefreshToken, session.RefreshToken); err != nil {
		return fmt.Errorf("persist refresh token: %w", err)
	}

	t.adapter.SetToken(session.AccessToken)
	t.notifier.Info("Token refreshed successfully")
	t.logger.Debug().Time("expires_at", session.ExpiresAt()).Msg("session renewed")
	return nil
}

func (t *tokenService) clearSession(ctx context.Context) {
	t.adapter.SetToken("")
	if err := t.settings.Delete(ctx, store.KeyLogin); err != nil {
		t.logger.Err(err).Msg("failed to clear access token")
	}
	if err := t.settings.Delete(ctx, store.KeyRefreshToken); err != nil {
		t.logger.Err(err).Msg("failed to clear refresh token")
	}
}
