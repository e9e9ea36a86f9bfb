// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// AgentConfig is the top-level configuration container for the healthsync
// agent. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, an optional JSON
// file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
//
// All env lookups additionally carry the global HEALTHSYNC_ prefix.
type AgentConfig struct {
	// App holds application-level settings such as the sync server base URL
	// and the device push token.
	App App `envPrefix:"APP_"`

	// Storage holds the local SQLite database settings shared by the
	// settings store and the health record store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds outbound transport settings for the remote API client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Listener holds settings for the inbound push listener.
	Listener Listener `envPrefix:"LISTENER_"`

	// Workers holds background job settings (sync pass, token refresh,
	// per-record upload stagger).
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from environment variables and flags.
	// Populated via HEALTHSYNC_CONFIG or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// APIBase is the base URL of the remote sync server
	// (e.g. "https://api.husarprojects.com").
	// Env: HEALTHSYNC_APP_API_BASE
	APIBase string `env:"API_BASE"`

	// PushToken is the device token forwarded on login so the server can
	// address push messages to this agent.
	// Env: HEALTHSYNC_APP_PUSH_TOKEN
	PushToken string `env:"PUSH_TOKEN"`

	// SentryEnabled mirrors the persisted crash-reporting feature flag.
	// The agent only round-trips the flag through the settings store;
	// the reporting integration itself lives with the UI collaborator.
	// Env: HEALTHSYNC_APP_SENTRY_ENABLED
	SentryEnabled bool `env:"SENTRY_ENABLED"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path backing both the settings store and the
	// local health record store (e.g. "/var/lib/healthsync/agent.db").
	// Env: HEALTHSYNC_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds outbound network settings used by the remote API client.
type Adapter struct {
	// RequestTimeout bounds every single HTTP call to the sync server.
	// A hung call stalls only its own record or batch; the pass continues
	// with the next item (e.g. "30s", "1m").
	// Env: HEALTHSYNC_ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Listener holds settings for the inbound push listener.
type Listener struct {
	// Address is the TCP address on which the push listener accepts
	// messages from the sync server, in "host:port" format.
	// Env: HEALTHSYNC_LISTENER_ADDRESS
	Address string `env:"ADDRESS"`
}

// Workers holds configuration for the agent's recurring background jobs.
type Workers struct {
	// SyncInterval defines how often the recurring sync pass runs.
	// Overridden at runtime by the persisted "taskDelay" setting when set.
	// Env: HEALTHSYNC_WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// TokenRefreshInterval defines how often the token lifecycle job runs.
	// Env: HEALTHSYNC_WORKERS_TOKEN_REFRESH_INTERVAL
	TokenRefreshInterval time.Duration `env:"TOKEN_REFRESH_INTERVAL"`

	// UploadStagger is the per-index delay applied to per-record uploads
	// (record j of a type is scheduled at j × UploadStagger).
	// Env: HEALTHSYNC_WORKERS_UPLOAD_STAGGER
	UploadStagger time.Duration `env:"UPLOAD_STAGGER"`
}

// Built-in defaults, merged with the lowest priority.
const (
	DefaultAPIBase              = "https://api.husarprojects.com"
	DefaultDSN                  = "healthsync.db"
	DefaultListenerAddress      = "localhost:8099"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultSyncInterval         = 2 * time.Hour
	DefaultTokenRefreshInterval = 3 * time.Hour
	DefaultUploadStagger        = 3 * time.Second
)

func defaultConfig() *AgentConfig {
	return &AgentConfig{
		App:      App{APIBase: DefaultAPIBase},
		Storage:  Storage{DB: DB{DSN: DefaultDSN}},
		Adapter:  Adapter{RequestTimeout: DefaultRequestTimeout},
		Listener: Listener{Address: DefaultListenerAddress},
		Workers: Workers{
			SyncInterval:         DefaultSyncInterval,
			TokenRefreshInterval: DefaultTokenRefreshInterval,
			UploadStagger:        DefaultUploadStagger,
		},
	}
}

// GetAgentConfig loads, merges, and validates the agent configuration from
// all available sources in the following priority order (first non-zero
// value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *AgentConfig or an error if any source fails to
// load or the final config fails validation.
func GetAgentConfig() (*AgentConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
