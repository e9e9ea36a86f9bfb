package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/husarprojects/healthsync/internal/adapter"
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/notify"
	"github.com/husarprojects/healthsync/internal/store"
	"github.com/husarprojects/healthsync/internal/workers"
	"github.com/husarprojects/healthsync/models"
)

// defaultWindowDays is the trailing window used when no cursor exists or
// full-sync mode is on.
const defaultWindowDays = 29

// SyncOptions selects the time window of a pass. With CustomStart set the
// pass syncs exactly the requested range and leaves the cursor untouched;
// otherwise the window is derived from full-sync mode and the stored cursor.
type SyncOptions struct {
	CustomStart *time.Time
	CustomEnd   *time.Time
}

// TypeResult reports one record type's share of a pass. The counters are a
// snapshot taken when the pass's type walk finishes; per-record uploads still
// in flight at that point are not yet counted. Call WaitForUploads and watch
// the Notifier's progress callbacks for the settled totals.
type TypeResult struct {
	Type    models.RecordType
	Records int
	Synced  int
	Failed  int
}

// SyncReport summarizes one pass.
type SyncReport struct {
	StartTime  time.Time
	EndTime    time.Time
	NumRecords int
	NumSynced  int
	NumFailed  int
	PerType    []TypeResult
}

type syncService struct {
	settings store.SettingsRepository
	health   store.HealthRecordRepository
	adapter  adapter.SyncServerAdapter
	notifier notify.Notifier
	queue    *workers.StaggerQueue
	stagger  time.Duration
	logger   *logger.Logger

	now func() time.Time
}

// NewSyncService builds the sync orchestrator. stagger is the per-index
// delay applied to per-record uploads (0 disables staggering, which tests
// rely on for determinism).
func NewSyncService(storages *store.AgentStorages, serverAdapter adapter.SyncServerAdapter, notifier notify.Notifier, stagger time.Duration, log *logger.Logger) SyncService {
	return &syncService{
		settings: storages.Settings,
		health:   storages.HealthRecords,
		adapter:  serverAdapter,
		notifier: notifier,
		queue:    workers.NewStaggerQueue(0),
		stagger:  stagger,
		logger:   log,
		now:      time.Now,
	}
}

// Sync runs one pass: compute the window, advance the cursor, then walk all
// record types independently. One type's failure never blocks the others.
//
// The cursor is advanced to the pass's start instant BEFORE any query or
// upload completes, so a crash mid-pass under-syncs the already-cursored
// window instead of re-deriving an identical window from an older cursor.
// This is the original engine's deliberate durability-over-completeness
// trade-off and is preserved as-is.
func (s *syncService) Sync(ctx context.Context, opts SyncOptions) (*SyncReport, error) {
	if s.adapter.Token() == "" {
		return nil, ErrNotLoggedIn
	}

	now := s.now()

	endTime := now
	if opts.CustomEnd != nil {
		endTime = *opts.CustomEnd
	}
	startTime := s.windowStart(ctx, now, opts.CustomStart)

	if opts.CustomStart == nil {
		if err := s.settings.SetPlain(ctx, store.KeyLastSync, now.UTC().Format(time.RFC3339)); err != nil {
			return nil, fmt.Errorf("persist sync cursor: %w", err)
		}
	}

	if opts.CustomStart != nil {
		s.notifier.Info("Syncing from custom time...")
	} else {
		s.notifier.Info("Syncing data...")
	}
	s.logger.Info().
		Time("start", startTime).
		Time("end", endTime).
		Msg("starting sync pass")

	pass := newSyncPass(startTime, endTime, s.notifier)

	for _, recordType := range models.AllRecordTypes() {
		records, err := s.health.QueryByTimeRange(ctx, recordType, startTime, endTime)
		if err != nil {
			s.logger.Err(err).Str("record_type", recordType.String()).Msg("query failed, skipping type")
			pass.addType(recordType, 0)
			continue
		}

		pass.addType(recordType, len(records))

		switch recordType.Fanout() {
		case models.FanoutPerRecord:
			for j := range records {
				id := records[j].UUID
				s.queue.Schedule(ctx, time.Duration(j)*s.stagger, func() {
					s.uploadOne(ctx, recordType, id, pass)
				})
			}
		default:
			if err := s.adapter.UploadBatch(ctx, recordType, records); err != nil {
				s.logger.Err(err).Str("record_type", recordType.String()).Msg("batch upload failed")
				pass.complete(recordType, len(records), false)
			} else {
				pass.complete(recordType, len(records), true)
			}
		}
	}

	pass.seal()
	return pass.report(), nil
}

func (s *syncService) WaitForUploads() {
	s.queue.Wait()
}

// uploadOne re-reads a record by id and ships it in its own call. Per-record
// types carry payloads that the time-range query returns in truncated form,
// so the fresh single-record read is what actually goes on the wire.
func (s *syncService) uploadOne(ctx context.Context, recordType models.RecordType, id string, pass *syncPass) {
	record, err := s.health.ReadOne(ctx, recordType, id)
	if err == nil {
		err = s.adapter.UploadOne(ctx, recordType, record)
	}
	if err != nil {
		s.logger.Err(err).Str("record_type", recordType.String()).Str("uuid", id).Msg("record upload failed")
	}
	pass.complete(recordType, 1, err == nil)
}

// windowStart resolves the pass start: custom range first, then full-sync
// mode, then the stored cursor, then the trailing default window.
func (s *syncService) windowStart(ctx context.Context, now time.Time, customStart *time.Time) time.Time {
	if customStart != nil {
		return *customStart
	}

	if s.fullSyncMode(ctx) {
		return now.AddDate(0, 0, -defaultWindowDays)
	}

	raw, ok, err := s.settings.Get(ctx, store.KeyLastSync)
	if err == nil && ok {
		if cursor, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
			return cursor
		}
		s.logger.Warn().Str("lastSync", raw).Msg("unparseable sync cursor, using default window")
	}

	return now.AddDate(0, 0, -defaultWindowDays)
}

// fullSyncMode reads the persisted flag; full sync is the default mode.
func (s *syncService) fullSyncMode(ctx context.Context) bool {
	raw, ok, err := s.settings.Get(ctx, store.KeyFullSyncMode)
	if err != nil || !ok {
		return true
	}
	return raw == "true"
}

// syncPass tracks one pass's counters. Per-record uploads complete
// concurrently and out of order, so all mutation happens under mu; the
// progress notification is monotonically increasing and idempotent to
// re-display, which makes the completion race across uploads harmless.
type syncPass struct {
	notifier notify.Notifier

	mu        sync.Mutex
	startTime time.Time
	endTime   time.Time
	total     int
	attempted int
	sealed    bool
	idled     bool
	order     []models.RecordType
	perType   map[models.RecordType]*TypeResult
}

func newSyncPass(startTime, endTime time.Time, notifier notify.Notifier) *syncPass {
	return &syncPass{
		notifier:  notifier,
		startTime: startTime,
		endTime:   endTime,
		order:     make([]models.RecordType, 0, len(models.AllRecordTypes())),
		perType:   make(map[models.RecordType]*TypeResult),
	}
}

func (p *syncPass) addType(recordType models.RecordType, numRecords int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.order = append(p.order, recordType)
	p.perType[recordType] = &TypeResult{Type: recordType, Records: numRecords}
	p.total += numRecords
}

// complete registers n finished upload attempts for recordType and pushes a
// progress update. The indicator switches back to the idle message exactly
// once, when the pass is sealed and the running total has reached the pass
// total.
func (p *syncPass) complete(recordType models.RecordType, n int, ok bool) {
	p.mu.Lock()

	result := p.perType[recordType]
	if result != nil {
		if ok {
			result.Synced += n
		} else {
			result.Failed += n
		}
	}
	p.attempted += n
	attempted, total := p.attempted, p.total
	drained := p.drainedLocked()

	p.mu.Unlock()

	p.notifier.Progress(attempted, total)
	if drained {
		p.notifier.Idle()
	}
}

// seal marks the pass's type walk as finished. Until seal, attempted can
// transiently equal total between types, so the drain check waits for it.
func (p *syncPass) seal() {
	p.mu.Lock()
	p.sealed = true
	drained := p.drainedLocked()
	p.mu.Unlock()

	if drained {
		p.notifier.Idle()
	}
}

func (p *syncPass) drainedLocked() bool {
	if !p.sealed || p.idled || p.attempted != p.total {
		return false
	}
	p.idled = true
	return true
}

func (p *syncPass) report() *SyncReport {
	p.mu.Lock()
	defer p.mu.Unlock()

	report := &SyncReport{
		StartTime:  p.startTime,
		EndTime:    p.endTime,
		NumRecords: p.total,
		PerType:    make([]TypeResult, 0, len(p.order)),
	}
	for _, recordType := range p.order {
		result := *p.perType[recordType]
		report.NumSynced += result.Synced
		report.NumFailed += result.Failed
		report.PerType = append(report.PerType, result)
	}
	return report
}
