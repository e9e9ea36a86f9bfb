// SPDX-License-Identifier: Apache-2.0

package config

import "net/url"

// validate checks that the final merged [AgentConfig] satisfies all agent
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go otherwise.
func (cfg *AgentConfig) validate() error {
	if cfg.App.APIBase == "" {
		return ErrInvalidAppConfigs
	}
	if u, err := url.Parse(cfg.App.APIBase); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Listener.Address == "" {
		return ErrInvalidListenerConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.TokenRefreshInterval <= 0 || cfg.Workers.UploadStagger < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
