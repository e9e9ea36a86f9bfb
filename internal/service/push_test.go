// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/mock"
	"github.com/husarprojects/healthsync/internal/store"
	"github.com/husarprojects/healthsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPushSvc(t *testing.T, ctrl *gomock.Controller) (PushService, *mock.MockHealthRecordRepository, *mock.MockSyncServerAdapter, *recordingNotifier) {
	t.Helper()

	mockHealth := mock.NewMockHealthRecordRepository(ctrl)
	mockAdapter := mock.NewMockSyncServerAdapter(ctrl)
	notifier := &recordingNotifier{}

	storages := &store.AgentStorages{HealthRecords: mockHealth}
	svc := NewPushService(storages, mockAdapter, notifier, logger.Nop())

	return svc, mockHealth, mockAdapter, notifier
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestPushService_ApplyRemotePush_InsertsRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHealth, _, notifier := newTestPushSvc(t, ctrl)
	ctx := context.Background()

	records := []models.Record{
		{UUID: "w-1", Type: models.Weight, StartTime: time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)},
		{UUID: "w-2", Type: models.Weight, StartTime: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)},
	}

	mockHealth.EXPECT().InsertMany(ctx, records).Return([]string{"w-1", "w-2"}, nil)

	require.NoError(t, svc.ApplyRemotePush(ctx, mustMarshal(t, records)))
	assert.Empty(t, notifier.alerts)
}

func TestPushService_ApplyRemotePush_EmptyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestPushSvc(t, ctrl)

	require.NoError(t, svc.ApplyRemotePush(context.Background(), []byte(`[]`)))
}

func TestPushService_ApplyRemotePush_MalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestPushSvc(t, ctrl)

	err := svc.ApplyRemotePush(context.Background(), []byte(`{"not":"an array"`))
	require.ErrorIs(t, err, ErrBadPayload)
}

func TestPushService_ApplyRemotePush_InsertFailureRaisesOneAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHealth, _, notifier := newTestPushSvc(t, ctrl)
	ctx := context.Background()

	records := []models.Record{
		{UUID: "w-1", Type: models.Weight},
		{UUID: "w-2", Type: models.Weight},
	}

	insertErr := errors.New("disk full")
	mockHealth.EXPECT().InsertMany(ctx, gomock.Any()).Return(nil, insertErr)

	err := svc.ApplyRemotePush(ctx, mustMarshal(t, records))
	require.ErrorIs(t, err, insertErr)

	// Exactly one alert for the whole batch, naming the record type.
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, models.Weight, notifier.alerts[0])
}

func TestPushService_ApplyRemoteDelete_LocalAndRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHealth, mockAdapter, _ := newTestPushSvc(t, ctrl)
	ctx := context.Background()

	payload := models.DeletePayload{
		RecordType: models.Weight,
		UUIDs:      []string{"w-1", "w-2"},
	}

	mockHealth.EXPECT().DeleteByIDs(ctx, models.Weight, []string{"w-1", "w-2"}).Return(nil)

	// The remote notification runs detached from the request context.
	remoteDone := make(chan struct{})
	mockAdapter.EXPECT().
		DeleteByIDs(gomock.Any(), models.Weight, []string{"w-1", "w-2"}).
		DoAndReturn(func(context.Context, models.RecordType, []string) error {
			close(remoteDone)
			return nil
		})

	require.NoError(t, svc.ApplyRemoteDelete(ctx, mustMarshal(t, payload)))

	select {
	case <-remoteDone:
	case <-time.After(time.Second):
		t.Fatal("remote delete was never issued")
	}
}

func TestPushService_ApplyRemoteDelete_LocalFailureStillNotifiesServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHealth, mockAdapter, _ := newTestPushSvc(t, ctrl)
	ctx := context.Background()

	payload := models.DeletePayload{RecordType: models.Steps, UUIDs: []string{"s-1"}}

	mockHealth.EXPECT().DeleteByIDs(ctx, models.Steps, []string{"s-1"}).Return(errors.New("database is locked"))

	remoteDone := make(chan struct{})
	mockAdapter.EXPECT().
		DeleteByIDs(gomock.Any(), models.Steps, []string{"s-1"}).
		DoAndReturn(func(context.Context, models.RecordType, []string) error {
			close(remoteDone)
			return nil
		})

	require.NoError(t, svc.ApplyRemoteDelete(ctx, mustMarshal(t, payload)))

	select {
	case <-remoteDone:
	case <-time.After(time.Second):
		t.Fatal("remote delete was never issued")
	}
}

func TestPushService_ApplyRemoteDelete_MalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestPushSvc(t, ctrl)

	err := svc.ApplyRemoteDelete(context.Background(), []byte(`"uuids"`))
	require.ErrorIs(t, err, ErrBadPayload)
}

func TestPushService_Apply_Dispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHealth, mockAdapter, _ := newTestPushSvc(t, ctrl)
	ctx := context.Background()

	records := []models.Record{{UUID: "h-1", Type: models.Height}}
	mockHealth.EXPECT().InsertMany(ctx, records).Return([]string{"h-1"}, nil)

	pushOp := models.RemoteOp{Op: models.OpPush, Data: string(mustMarshal(t, records))}
	require.NoError(t, svc.Apply(ctx, pushOp))

	payload := models.DeletePayload{RecordType: models.Height, UUIDs: []string{"h-1"}}
	mockHealth.EXPECT().DeleteByIDs(ctx, models.Height, []string{"h-1"}).Return(nil)

	remoteDone := make(chan struct{})
	mockAdapter.EXPECT().
		DeleteByIDs(gomock.Any(), models.Height, []string{"h-1"}).
		DoAndReturn(func(context.Context, models.RecordType, []string) error {
			close(remoteDone)
			return nil
		})

	deleteOp := models.RemoteOp{Op: models.OpDelete, Data: string(mustMarshal(t, payload))}
	require.NoError(t, svc.Apply(ctx, deleteOp))

	select {
	case <-remoteDone:
	case <-time.After(time.Second):
		t.Fatal("remote delete was never issued")
	}

	err := svc.Apply(ctx, models.RemoteOp{Op: "PATCH", Data: "{}"})
	require.ErrorIs(t, err, ErrBadPayload)
}
