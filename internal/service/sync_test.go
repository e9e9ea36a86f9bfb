// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"sync"
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

// recordingNotifier captures engine events without mockgen: Progress is
// called from upload goroutines, so a strict mock would make every test
// spell out the whole progress sequence.
type recordingNotifier struct {
	mu       sync.Mutex
	progress [][2]int
	idles    int
	alerts   []models.RecordType
	infos    []string
}

func (n *recordingNotifier) Progress(synced, total int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.progress = append(n.progress, [2]int{synced, total})
}

func (n *recordingNotifier) Idle() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.idles++
}

func (n *recordingNotifier) Alert(recordType models.RecordType, _ error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, recordType)
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *recordingNotifier) lastProgress() (int, int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.progress) == 0 {
		return 0, 0, false
	}
	last := n.progress[len(n.progress)-1]
	return last[0], last[1], true
}

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// numBulkTypes is the number of record types uploaded as a single batch.
func numBulkTypes() int {
	n := 0
	for _, t := range models.AllRecordTypes() {
		if t.Fanout() == models.FanoutBulk {
			n++
		}
	}
	return n
}

func newTestSyncSvc(t *testing.T, ctrl *gomock.Controller) (*syncService, *mock.MockSettingsRepository, *mock.MockHealthRecordRepository, *mock.MockSyncServerAdapter, *recordingNotifier) {
	t.Helper()

	mockSettings := mock.NewMockSettingsRepository(ctrl)
	mockHealth := mock.NewMockHealthRecordRepository(ctrl)
	mockAdapter := mock.NewMockSyncServerAdapter(ctrl)
	notifier := &recordingNotifier{}

	storages := &store.AgentStorages{
		Settings:      mockSettings,
		HealthRecords: mockHealth,
	}

	svc := NewSyncService(storages, mockAdapter, notifier, 0, logger.Nop()).(*syncService)
	svc.now = func() time.Time { return fixedNow }

	return svc, mockSettings, mockHealth, mockAdapter, notifier
}

func TestSyncService_Sync_NotLoggedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, mockAdapter, _ := newTestSyncSvc(t, ctrl)
	mockAdapter.EXPECT().Token().Return("")

	report, err := svc.Sync(context.Background(), SyncOptions{})
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Nil(t, report)
}

func TestSyncService_Sync_CursorWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, mockHealth, mockAdapter, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()
	cursor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mockAdapter.EXPECT().Token().Return("access-token")
	mockSettings.EXPECT().Get(ctx, store.KeyFullSyncMode).Return("false", true, nil)
	mockSettings.EXPECT().Get(ctx, store.KeyLastSync).Return(cursor.Format(time.RFC3339), true, nil)

	// The cursor must move to the pass start before any type is queried.
	setCursor := mockSettings.EXPECT().
		SetPlain(ctx, store.KeyLastSync, fixedNow.Format(time.RFC3339)).
		Return(nil)
	mockHealth.EXPECT().
		QueryByTimeRange(ctx, gomock.Any(), cursor, fixedNow).
		Return(nil, nil).
		Times(len(models.AllRecordTypes())).
		After(setCursor)
	mockAdapter.EXPECT().
		UploadBatch(ctx, gomock.Any(), gomock.Len(0)).
		Return(nil).
		Times(numBulkTypes())

	report, err := svc.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, cursor, report.StartTime)
	assert.Equal(t, fixedNow, report.EndTime)
	assert.Zero(t, report.NumRecords)
}

func TestSyncService_Sync_FullSyncModeUsesDefaultWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, mockHealth, mockAdapter, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()
	wantStart := fixedNow.AddDate(0, 0, -29)

	mockAdapter.EXPECT().Token().Return("access-token")
	// Absent flag means full sync: the stored cursor is never consulted.
	mockSettings.EXPECT().Get(ctx, store.KeyFullSyncMode).Return("", false, nil)
	mockSettings.EXPECT().SetPlain(ctx, store.KeyLastSync, fixedNow.Format(time.RFC3339)).Return(nil)
	mockHealth.EXPECT().
		QueryByTimeRange(ctx, gomock.Any(), wantStart, fixedNow).
		Return(nil, nil).
		Times(len(models.AllRecordTypes()))
	mockAdapter.EXPECT().
		UploadBatch(ctx, gomock.Any(), gomock.Len(0)).
		Return(nil).
		Times(numBulkTypes())

	report, err := svc.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, wantStart, report.StartTime)
}

func TestSyncService_Sync_UnparseableCursorFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, mockHealth, mockAdapter, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()
	wantStart := fixedNow.AddDate(0, 0, -29)

	mockAdapter.EXPECT().Token().Return("access-token")
	mockSettings.EXPECT().Get(ctx, store.KeyFullSyncMode).Return("false", true, nil)
	mockSettings.EXPECT().Get(ctx, store.KeyLastSync).Return("three days ago", true, nil)
	mockSettings.EXPECT().SetPlain(ctx, store.KeyLastSync, fixedNow.Format(time.RFC3339)).Return(nil)
	mockHealth.EXPECT().
		QueryByTimeRange(ctx, gomock.Any(), wantStart, fixedNow).
		Return(nil, nil).
		Times(len(models.AllRecordTypes()))
	mockAdapter.EXPECT().
		UploadBatch(ctx, gomock.Any(), gomock.Len(0)).
		Return(nil).
		Times(numBulkTypes())

	_, err := svc.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
}

func TestSyncService_Sync_CustomRangeLeavesCursorUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockHealth, mockAdapter, notifier := newTestSyncSvc(t, ctrl)
	ctx := context.Background()
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)

	stepsRecords := []models.Record{
		{UUID: "s-1", Type: models.Steps},
		{UUID: "s-2", Type: models.Steps},
	}

	mockAdapter.EXPECT().Token().Return("access-token")
	// No settings expectations: a custom range must not read the full-sync
	// flag, read the cursor, or advance it.
	mockHealth.EXPECT().
		QueryByTimeRange(ctx, gomock.Any(), start, end).
		DoAndReturn(func(_ context.Context, recordType models.RecordType, _, _ time.Time) ([]models.Record, error) {
			if recordType == models.Steps {
				return stepsRecords, nil
			}
			return nil, nil
		}).
		Times(len(models.AllRecordTypes()))

	var stepsBatches [][]models.Record
	mockAdapter.EXPECT().
		UploadBatch(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, recordType models.RecordType, records []models.Record) error {
			if recordType == models.Steps {
				stepsBatches = append(stepsBatches, records)
			}
			return nil
		}).
		Times(numBulkTypes())

	report, err := svc.Sync(ctx, SyncOptions{CustomStart: &start, CustomEnd: &end})
	require.NoError(t, err)

	// The queried records go up in exactly one batch, unmodified.
	require.Len(t, stepsBatches, 1)
	assert.Equal(t, stepsRecords, stepsBatches[0])

	assert.Equal(t, 2, report.NumRecords)
	assert.Equal(t, 2, report.NumSynced)
	assert.Zero(t, report.NumFailed)
	assert.Contains(t, notifier.infos, "Syncing from custom time...")
}

func TestSyncService_Sync_PerRecordFanout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, mockHealth, mockAdapter, notifier := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	sessions := []models.Record{
		{UUID: "sleep-1", Type: models.SleepSession},
		{UUID: "sleep-2", Type: models.SleepSession},
		{UUID: "sleep-3", Type: models.SleepSession},
	}

	mockAdapter.EXPECT().Token().Return("access-token")
	mockSettings.EXPECT().Get(ctx, store.KeyFullSyncMode).Return("", false, nil)
	mockSettings.EXPECT().SetPlain(ctx, store.KeyLastSync, gomock.Any()).Return(nil)
	mockHealth.EXPECT().
		QueryByTimeRange(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, recordType models.RecordType, _, _ time.Time) ([]models.Record, error) {
			if recordType == models.SleepSession {
				return sessions, nil
			}
			return nil, nil
		}).
		Times(len(models.AllRecordTypes()))
	mockAdapter.EXPECT().
		UploadBatch(ctx, gomock.Any(), gomock.Len(0)).
		Return(nil).
		Times(numBulkTypes())

	// Each queried id is re-read and shipped in its own call, once.
	for _, record := range sessions {
		mockHealth.EXPECT().ReadOne(ctx, models.SleepSession, record.UUID).Return(record, nil)
		mockAdapter.EXPECT().UploadOne(ctx, models.SleepSession, record).Return(nil)
	}

	report, err := svc.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.NumRecords)

	svc.WaitForUploads()

	synced, total, ok := notifier.lastProgress()
	require.True(t, ok)
	assert.Equal(t, 3, synced)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, notifier.idles)
}

func TestSyncService_Sync_QueryFailureSkipsTypeOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, mockHealth, mockAdapter, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	stepsRecords := []models.Record{{UUID: "s-1", Type: models.Steps}}

	mockAdapter.EXPECT().Token().Return("access-token")
	mockSettings.EXPECT().Get(ctx, store.KeyFullSyncMode).Return("", false, nil)
	mockSettings.EXPECT().SetPlain(ctx, store.KeyLastSync, gomock.Any()).Return(nil)
	mockHealth.EXPECT().
		QueryByTimeRange(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, recordType models.RecordType, _, _ time.Time) ([]models.Record, error) {
			switch recordType {
			case models.BloodGlucose:
				return nil, errors.New("device database unavailable")
			case models.Steps:
				return stepsRecords, nil
			default:
				return nil, nil
			}
		}).
		Times(len(models.AllRecordTypes()))

	// The failed type never reaches the adapter; every other bulk type does.
	mockAdapter.EXPECT().
		UploadBatch(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, recordType models.RecordType, _ []models.Record) error {
			assert.NotEqual(t, models.BloodGlucose, recordType)
			return nil
		}).
		Times(numBulkTypes() - 1)

	report, err := svc.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.NumRecords)
	assert.Equal(t, 1, report.NumSynced)
	assert.Zero(t, report.NumFailed)
}

func TestSyncService_Sync_BatchFailureCountsFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, mockHealth, mockAdapter, notifier := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	stepsRecords := []models.Record{
		{UUID: "s-1", Type: models.Steps},
		{UUID: "s-2", Type: models.Steps},
	}

	mockAdapter.EXPECT().Token().Return("access-token")
	mockSettings.EXPECT().Get(ctx, store.KeyFullSyncMode).Return("", false, nil)
	mockSettings.EXPECT().SetPlain(ctx, store.KeyLastSync, gomock.Any()).Return(nil)
	mockHealth.EXPECT().
		QueryByTimeRange(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, recordType models.RecordType, _, _ time.Time) ([]models.Record, error) {
			if recordType == models.Steps {
				return stepsRecords, nil
			}
			return nil, nil
		}).
		Times(len(models.AllRecordTypes()))
	mockAdapter.EXPECT().
		UploadBatch(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, recordType models.RecordType, _ []models.Record) error {
			if recordType == models.Steps {
				return errors.New("server unavailable")
			}
			return nil
		}).
		Times(numBulkTypes())

	report, err := svc.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.NumRecords)
	assert.Zero(t, report.NumSynced)
	assert.Equal(t, 2, report.NumFailed)

	// The pass drained, so the surface went back to idle.
	assert.Equal(t, 1, notifier.idles)
}
