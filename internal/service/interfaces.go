// SPDX-License-Identifier: Apache-2.0

// Package service implements the healthsync engine: the sync orchestrator,
// the token lifecycle manager, the login flow, and the push reconciliation
// handler. The UI layer is an external collaborator that calls these
// interfaces and observes progress through [notify.Notifier].
package service

import (
	"context"

	"github.com/husarprojects/healthsync/models"
)

// SyncService drives one bidirectional sync pass at a time. Concurrent
// passes are allowed (a manual trigger does not interrupt a running pass);
// each keeps its own counters.
type SyncService interface {
	// Sync runs one pass over every record type. See SyncOptions for the
	// custom-window behaviour. The returned report covers all bulk uploads;
	// per-record uploads scheduled with a stagger delay may still be
	// completing when Sync returns.
	Sync(ctx context.Context, opts SyncOptions) (*SyncReport, error)

	// WaitForUploads blocks until all staggered per-record uploads
	// scheduled so far have completed. Intended for tests and shutdown.
	WaitForUploads()
}

// AuthService owns the login/logout flow and session restoration.
type AuthService interface {
	// Login authenticates against the server (which upserts the account),
	// persists both tokens, and mirrors the access token into the adapter.
	Login(ctx context.Context, username, password string) error

	// Logout clears the persisted and in-memory session.
	Logout(ctx context.Context) error

	// Restore loads a previously persisted session into the adapter.
	// Returns true when a session was found.
	Restore(ctx context.Context) (bool, error)
}

// TokenService is the token lifecycle manager. It is run by the scheduler
// on a fixed period.
type TokenService interface {
	// RefreshOnce performs one refresh tick: a no-op without a stored
	// refresh token; otherwise the session is renewed, or cleared entirely
	// on any failure (silent logout, no retry before the next tick).
	RefreshOnce(ctx context.Context) error
}

// PushService applies inbound remote operations. Delivery is at-most-once
// per id but duplicates are possible; both operations are idempotent at the
// store layer.
type PushService interface {
	// Apply dispatches op to ApplyRemotePush or ApplyRemoteDelete.
	Apply(ctx context.Context, op models.RemoteOp) error

	// ApplyRemotePush decodes a JSON array of records sharing one record
	// type and inserts them locally. An insert failure raises exactly one
	// user-visible alert naming the record type.
	ApplyRemotePush(ctx context.Context, data []byte) error

	// ApplyRemoteDelete decodes {recordType, uuids}, deletes locally, and
	// independently notifies the server (fire and forget).
	ApplyRemoteDelete(ctx context.Context, data []byte) error
}
