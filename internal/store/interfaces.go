// SPDX-License-Identifier: Apache-2.0

// Package store holds the agent's local persistence layer: the key-value
// settings repository and the health record repository, both backed by a
// single shared SQLite database.
//
// The engine never touches the device health database directly for
// persistence; it only goes through [HealthRecordRepository], which enables
// substitution in tests.
package store

import (
	"context"
	"time"

	"github.com/husarprojects/healthsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SettingsRepository is durable process-wide key-value storage for session
// tokens, the sync cursor, server base URL and feature flags.
//
// Writes are synchronous from the caller's perspective, but each key is an
// independent row: a crash between two related writes (e.g. token and
// refresh token) can leave them inconsistent.
type SettingsRepository interface {
	// SetStructured serializes value to JSON and stores it under key.
	SetStructured(ctx context.Context, key string, value any) error

	// SetPlain stores value verbatim under key.
	SetPlain(ctx context.Context, key, value string) error

	// Get returns the raw stored value. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// GetStructured unmarshals the stored value into out. The first return
	// is false when the key is absent. A value that is not valid JSON for
	// out yields an error; callers holding plain values use Get.
	GetStructured(ctx context.Context, key string, out any) (bool, error)

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// HealthRecordRepository abstracts the device health database.
//
// InsertMany and DeleteByIDs are idempotent: inserting an already-present
// uuid leaves exactly one record for that uuid, and deleting an absent uuid
// succeeds with the store unchanged. The push channel offers at-most-once
// delivery per id but may redeliver, so repeated application must not
// corrupt state.
type HealthRecordRepository interface {
	// Initialize verifies the backing database is reachable. Safe to call
	// more than once.
	Initialize(ctx context.Context) error

	// QueryByTimeRange returns all records of recordType whose start time
	// falls in [start, end).
	QueryByTimeRange(ctx context.Context, recordType models.RecordType, start, end time.Time) ([]models.Record, error)

	// ReadOne returns the single record of recordType with the given uuid,
	// or ErrRecordNotFound.
	ReadOne(ctx context.Context, recordType models.RecordType, id string) (models.Record, error)

	// InsertMany stores records, generating uuids for records without one,
	// and returns the ids in input order.
	InsertMany(ctx context.Context, records []models.Record) ([]string, error)

	// DeleteByIDs removes the records of recordType with the given uuids.
	DeleteByIDs(ctx context.Context, recordType models.RecordType, ids []string) error
}
