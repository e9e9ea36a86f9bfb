package service

import (
	"time"

	"github.com/husarprojects/healthsync/internal/adapter"
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/notify"
	"github.com/husarprojects/healthsync/internal/store"
)

// AgentServices groups all engine services into a single value that can be
// passed to the scheduler, the push listener, and the UI collaborator.
type AgentServices struct {
	Sync  SyncService
	Auth  AuthService
	Token TokenService
	Push  PushService
}

// ServicesConfig carries the service-level knobs taken from the agent
// config.
type ServicesConfig struct {
	// PushToken is the device token forwarded on login.
	PushToken string
	// UploadStagger is the per-index delay for per-record uploads.
	UploadStagger time.Duration
}

// NewAgentServices wires all engine services against the shared storages,
// server adapter and notifier.
func NewAgentServices(storages *store.AgentStorages, serverAdapter adapter.SyncServerAdapter, notifier notify.Notifier, cfg ServicesConfig, log *logger.Logger) *AgentServices {
	return &AgentServices{
		Sync:  NewSyncService(storages, serverAdapter, notifier, cfg.UploadStagger, log),
		Auth:  NewAuthService(storages, serverAdapter, notifier, cfg.PushToken, log),
		Token: NewTokenService(storages, serverAdapter, notifier, log),
		Push:  NewPushService(storages, serverAdapter, notifier, log),
	}
}
