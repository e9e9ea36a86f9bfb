// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the healthsync server.
//
// The primary abstraction is [SyncServerAdapter], which decouples the
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) speaking the /api/v2 protocol.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/husarprojects/healthsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_server_adapter_mock.go -package=mock

// SyncServerAdapter defines transport-agnostic communication with the
// healthsync server. Implementations are responsible for serialisation,
// authorization header management, and mapping transport-level errors to the
// sentinel values defined in this package.
//
// The adapter performs no retries; retry policy lives with the callers
// (effectively: none within a pass, failures are logged and the pass
// continues with the next item).
type SyncServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. Pass an empty string to clear the
	// session. Safe for concurrent use with in-flight requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set.
	Token() string

	// Login authenticates with the server, creating the account on first
	// use (server-side upsert). pushToken is the device token the server
	// will use to address push messages to this agent. On success the
	// access token is stored via SetToken and the full session returned.
	Login(ctx context.Context, username, password, pushToken string) (models.Session, error)

	// Refresh exchanges a refresh token for a fresh session. On success the
	// new access token is stored via SetToken. Any non-success response or
	// network error means the caller must treat the session as invalid.
	Refresh(ctx context.Context, refreshToken string) (models.Session, error)

	// UploadBatch sends an ordered slice of records of one bulk-class type
	// in a single call. Returns ErrNoSession if no token is set.
	UploadBatch(ctx context.Context, recordType models.RecordType, records []models.Record) error

	// UploadOne sends exactly one record of a per-record-class type.
	// Returns ErrNoSession if no token is set.
	UploadOne(ctx context.Context, recordType models.RecordType, record models.Record) error

	// DeleteByIDs notifies the server that the given record uuids were
	// deleted locally. Returns ErrNoSession if no token is set.
	DeleteByIDs(ctx context.Context, recordType models.RecordType, ids []string) error
}
