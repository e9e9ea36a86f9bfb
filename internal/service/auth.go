package service

import (
	"context"
	"fmt"

	"github.com/husarprojects/healthsync/internal/adapter"
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/notify"
	"github.com/husarprojects/healthsync/internal/store"
)

type authService struct {
	settings  store.SettingsRepository
	adapter   adapter.SyncServerAdapter
	notifier  notify.Notifier
	pushToken string
	logger    *logger.Logger
}

// NewAuthService builds the login flow. pushToken is the device token
// forwarded to the server so push messages can be addressed to this agent.
func NewAuthService(storages *store.AgentStorages, serverAdapter adapter.SyncServerAdapter, notifier notify.Notifier, pushToken string, log *logger.Logger) AuthService {
	return &authService{
		settings:  storages.Settings,
		adapter:   serverAdapter,
		notifier:  notifier,
		pushToken: pushToken,
		logger:    log,
	}
}

func (a *authService) Login(ctx context.Context, username, password string) error {
	a.notifier.Info("Logging in...")

	session, err := a.adapter.Login(ctx, username, password, a.pushToken)
	if err != nil {
		return fmt.Errorf("login on server: %w", err)
	}

	if err = a.settings.SetPlain(ctx, store.KeyLogin, session.AccessToken); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if err = a.settings.SetPlain(ctx, store.KeyRefreshToken, session.RefreshToken); err != nil {
		return fmt.Errorf("persist refresh token: %w", err)
	}

	a.adapter.SetToken(session.AccessToken)
	a.notifier.Info("Logged in successfully")
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	if err := a.settings.Delete(ctx, store.KeyLogin); err != nil {
		return fmt.Errorf("clear access token: %w", err)
	}
	if err := a.settings.Delete(ctx, store.KeyRefreshToken); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	a.notifier.Info("Logged out successfully")
	return nil
}

func (a *authService) Restore(ctx context.Context) (bool, error) {
	token, ok, err := a.settings.Get(ctx, store.KeyLogin)
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if !ok || token == "" {
		return false, nil
	}

	a.adapter.SetToken(token)
	a.logger.Debug().Msg("session restored from settings")
	return true, nil
}
