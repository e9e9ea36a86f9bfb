package config

import "errors"

// Validation errors returned by [AgentConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an empty API base URL).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty database path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAdapterConfigs indicates invalid outbound transport settings
	// (for example, a zero request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidListenerConfigs indicates invalid push listener settings.
	ErrInvalidListenerConfigs = errors.New("invalid listener configuration")
	// ErrInvalidWorkerConfigs indicates invalid background job settings
	// (for example, a zero sync interval or negative upload stagger).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
