// Package agent wires the healthsync engine together: configuration,
// storages, the server adapter, services, the recurring background jobs and
// the inbound push listener.
package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/husarprojects/healthsync/internal/adapter"
	"github.com/husarprojects/healthsync/internal/config"
	handlerhttp "github.com/husarprojects/healthsync/internal/handler/http"
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/notify"
	"github.com/husarprojects/healthsync/internal/service"
	"github.com/husarprojects/healthsync/internal/store"
	"github.com/husarprojects/healthsync/internal/workers"
	"github.com/husarprojects/healthsync/models"
)

type App struct {
	cfg      *config.AgentConfig
	storages *store.AgentStorages
	services *service.AgentServices
	notifier notify.Notifier
	logger   *logger.Logger

	syncInterval time.Duration
	syncJob      *workers.RecurringJob
	tokenJob     *workers.RecurringJob
	listener     *http.Server
}

// NewApp builds the fully wired agent. Persisted settings override the
// static config where the user can change them at runtime: the stored
// apiBase wins over the configured base URL and the stored taskDelay wins
// over the configured sync interval.
func NewApp(cfg *config.AgentConfig, notifier notify.Notifier, log *logger.Logger) (*App, error) {
	if err := models.VerifyFanout(); err != nil {
		return nil, fmt.Errorf("record type table: %w", err)
	}

	storages, err := store.NewAgentStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storages: %w", err)
	}

	ctx := context.Background()

	apiBase := cfg.App.APIBase
	if stored, ok, gerr := storages.Settings.Get(ctx, store.KeyAPIBase); gerr == nil && ok && stored != "" {
		apiBase = stored
		notifier.Info("API Base URL loaded")
	} else {
		notifier.Info("API Base URL not found. Using default server.")
	}

	syncInterval := cfg.Workers.SyncInterval
	if stored, ok, gerr := storages.Settings.Get(ctx, store.KeyTaskDelay); gerr == nil && ok {
		if millis, perr := strconv.ParseInt(stored, 10, 64); perr == nil && millis > 0 {
			syncInterval = time.Duration(millis) * time.Millisecond
		}
	}

	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: apiBase,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	services := service.NewAgentServices(storages, serverAdapter, notifier, service.ServicesConfig{
		PushToken:     cfg.App.PushToken,
		UploadStagger: cfg.Workers.UploadStagger,
	}, log)

	app := &App{
		cfg:          cfg,
		storages:     storages,
		services:     services,
		notifier:     notifier,
		logger:       log,
		syncInterval: syncInterval,
	}

	app.syncJob = workers.NewRecurringJob("sync", func(jobCtx context.Context) {
		if _, serr := services.Sync.Sync(jobCtx, service.SyncOptions{}); serr != nil {
			log.Err(serr).Msg("scheduled sync pass failed")
		}
	})
	app.tokenJob = workers.NewRecurringJob("refresh-token", func(jobCtx context.Context) {
		if terr := services.Token.RefreshOnce(jobCtx); terr != nil {
			log.Err(terr).Msg("scheduled token refresh failed")
		}
	})

	pushHandler := handlerhttp.NewHandler(services.Push, log)
	app.listener = &http.Server{
		Addr:    cfg.Listener.Address,
		Handler: pushHandler.Init(),
	}

	return app, nil
}

// Services exposes the engine's public operations to the UI collaborator.
func (a *App) Services() *service.AgentServices {
	return a.services
}

// SetSyncInterval updates the recurring sync period and persists it as the
// taskDelay setting (milliseconds, decimal string).
func (a *App) SetSyncInterval(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("sync interval must be positive")
	}
	if err := a.storages.Settings.SetPlain(ctx, store.KeyTaskDelay, strconv.FormatInt(interval.Milliseconds(), 10)); err != nil {
		return fmt.Errorf("persist sync interval: %w", err)
	}
	a.syncInterval = interval
	a.syncJob.Start(ctx, interval)
	return nil
}

// Run starts the agent and blocks until ctx is cancelled. The recurring
// jobs only run with a restored session, matching the engine's invariant
// that uploads never go out unauthenticated; the push listener always runs
// so a later login picks up queued-up server state on the next pass.
func (a *App) Run(ctx context.Context) error {
	if err := a.storages.HealthRecords.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize health store: %w", err)
	}

	loggedIn, err := a.services.Auth.Restore(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if loggedIn {
		a.syncJob.Start(ctx, a.syncInterval)
		a.tokenJob.Start(ctx, a.cfg.Workers.TokenRefreshInterval)
		a.logger.Info().
			Dur("sync_interval", a.syncInterval).
			Dur("token_refresh_interval", a.cfg.Workers.TokenRefreshInterval).
			Msg("background jobs started")
	} else {
		a.logger.Info().Msg("no session found, background jobs idle until login")
	}
	a.notifier.Idle()

	listenErr := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", a.listener.Addr).Msg("push listener starting")
		if serveErr := a.listener.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			listenErr <- serveErr
		}
	}()

	select {
	case err = <-listenErr:
		a.shutdown()
		return fmt.Errorf("push listener: %w", err)
	case <-ctx.Done():
		a.shutdown()
		return nil
	}
}

func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.listener.Shutdown(shutdownCtx); err != nil {
		a.logger.Err(err).Msg("push listener shutdown")
	}

	a.syncJob.Stop()
	a.tokenJob.Stop()
	a.services.Sync.WaitForUploads()
	a.logger.Info().Msg("agent stopped")
}
