package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-api-base sync server base URL
//	-push-token device push token sent on login
//	-d local SQLite database path
//	-listen push listener address in format [host]:[port]
//	-request-timeout outbound HTTP request timeout (e.g., "30s", "1m")
//	-sync-interval recurring sync pass interval (e.g., "2h")
//	-token-refresh-interval token refresh job interval (e.g., "3h")
//	-upload-stagger per-record upload delay step (e.g., "3s")
//	-c/-config json file path with configs
func ParseFlags() *AgentConfig {
	var apiBase string
	var pushToken string
	var databaseDSN string
	var listenAddress string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var tokenRefreshInterval time.Duration
	var uploadStagger time.Duration
	var jsonConfigPath string

	flag.StringVar(&apiBase, "api-base", "", "Sync server base URL")
	flag.StringVar(&pushToken, "push-token", "", "Device push token")
	flag.StringVar(&databaseDSN, "d", "", "Local SQLite database path")
	flag.StringVar(&listenAddress, "listen", "", "Push listener address host:port")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Sync pass interval (e.g., 2h)")
	flag.DurationVar(&tokenRefreshInterval, "token-refresh-interval", 0, "Token refresh interval (e.g., 3h)")
	flag.DurationVar(&uploadStagger, "upload-stagger", 0, "Per-record upload delay step (e.g., 3s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &AgentConfig{
		App: App{
			APIBase:   apiBase,
			PushToken: pushToken,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			RequestTimeout: requestTimeout,
		},
		Listener: Listener{
			Address: listenAddress,
		},
		Workers: Workers{
			SyncInterval:         syncInterval,
			TokenRefreshInterval: tokenRefreshInterval,
			UploadStagger:        uploadStagger,
		},
		JSONFilePath: jsonConfigPath,
	}
}
