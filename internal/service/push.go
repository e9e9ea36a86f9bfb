// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/husarprojects/healthsync/internal/adapter"
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/notify"
	"github.com/husarprojects/healthsync/internal/store"
	"github.com/husarprojects/healthsync/models"
)

type pushService struct {
	health   store.HealthRecordRepository
	adapter  adapter.SyncServerAdapter
	notifier notify.Notifier
	logger   *logger.Logger
}

// NewPushService builds the push reconciliation handler. It mirrors inbound
// PUSH operations into the local store and inbound DEL operations into both
// the local store and the remote server.
func NewPushService(storages *store.AgentStorages, serverAdapter adapter.SyncServerAdapter, notifier notify.Notifier, log *logger.Logger) PushService {
	return &pushService{
		health:   storages.HealthRecords,
		adapter:  serverAdapter,
		notifier: notifier,
		logger:   log,
	}
}

func (p *pushService) Apply(ctx context.Context, op models.RemoteOp) error {
	switch op.Op {
	case models.OpPush:
		return p.ApplyRemotePush(ctx, []byte(op.Data))
	case models.OpDelete:
		return p.ApplyRemoteDelete(ctx, []byte(op.Data))
	default:
		return fmt.Errorf("%w: unknown op %q", ErrBadPayload, op.Op)
	}
}

// ApplyRemotePush inserts a pushed batch of records. The store insert is
// idempotent, so redelivery of the same message cannot duplicate records.
// An insert failure is surfaced as a user-visible alert naming the record
// type: the server believes the push succeeded and will not resend, so a
// silent drop here would be silent data loss.
func (p *pushService) ApplyRemotePush(ctx context.Context, data []byte) error {
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		p.logger.Err(err).Msg("dropping malformed push payload")
		return fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	if len(records) == 0 {
		return nil
	}

	recordType := records[0].Type

	ids, err := p.health.InsertMany(ctx, records)
	if err != nil {
		p.notifier.Alert(recordType, err)
		return fmt.Errorf("insert pushed records: %w", err)
	}

	p.logger.Debug().
		Str("record_type", recordType.String()).
		Int("count", len(ids)).
		Msg("pushed records inserted")
	return nil
}

// ApplyRemoteDelete removes records locally and notifies the server of the
// deletion. The remote call is fire-and-forget: no acknowledgment is
// awaited and neither side is rolled back if the other fails. Deleting ids
// that are already absent is a no-op at the store layer.
func (p *pushService) ApplyRemoteDelete(ctx context.Context, data []byte) error {
	var payload models.DeletePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		p.logger.Err(err).Msg("dropping malformed delete payload")
		return fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	if err := p.health.DeleteByIDs(ctx, payload.RecordType, payload.UUIDs); err != nil {
		p.logger.Err(err).
			Str("record_type", payload.RecordType.String()).
			Msg("local delete failed")
	}

	go func() {
		// Detached from the request context: the reconciliation outlives
		// the push delivery.
		if err := p.adapter.DeleteByIDs(context.WithoutCancel(ctx), payload.RecordType, payload.UUIDs); err != nil {
			p.logger.Err(err).
				Str("record_type", payload.RecordType.String()).
				Msg("remote delete failed")
		}
	}()

	return nil
}
