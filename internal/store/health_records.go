package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/models"
)

// timeFormat is the canonical storage format for record timestamps: RFC 3339
// in UTC with the fractional seconds zero-padded to a fixed nine digits.
// The fixed width makes lexicographic order equal chronological order, which
// keeps the time-range query a plain string comparison. RFC3339Nano would
// strip trailing zeros, and then a whole-second timestamp sorts after any
// fractional one in the same second ('Z' > '.').
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// healthRecordRepository is the SQLite-backed implementation of
// [HealthRecordRepository], standing in for the platform health database.
type healthRecordRepository struct {
	*DB
	logger *logger.Logger
}

// NewHealthRecordRepository constructs a [HealthRecordRepository] backed by
// the provided database connection and logger.
func NewHealthRecordRepository(db *DB, logger *logger.Logger) HealthRecordRepository {
	return &healthRecordRepository{
		DB:     db,
		logger: logger,
	}
}

func (h *healthRecordRepository) Initialize(ctx context.Context) error {
	if err := h.PingContext(ctx); err != nil {
		return fmt.Errorf("health store unavailable: %w", err)
	}
	return nil
}

func (h *healthRecordRepository) QueryByTimeRange(ctx context.Context, recordType models.RecordType, start, end time.Time) ([]models.Record, error) {
	query, args, err := sq.Select("uuid", "record_type", "start_time", "end_time", "payload").
		From("records").
		Where(sq.Eq{"record_type": recordType}).
		Where(sq.GtOrEq{"start_time": start.UTC().Format(timeFormat)}).
		Where(sq.Lt{"start_time": end.UTC().Format(timeFormat)}).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	rows, err := h.QueryContext(ctx, query, args...)
	if err != nil {
		h.logger.Err(err).Str("record_type", recordType.String()).Msg("time range query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 50)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return records, nil
}

func (h *healthRecordRepository) ReadOne(ctx context.Context, recordType models.RecordType, id string) (models.Record, error) {
	query, args, err := sq.Select("uuid", "record_type", "start_time", "end_time", "payload").
		From("records").
		Where(sq.Eq{"record_type": recordType, "uuid": id}).
		ToSql()
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	row := h.QueryRowContext(ctx, query, args...)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, fmt.Errorf("%w: %s %s", ErrRecordNotFound, recordType, id)
	}
	return record, err
}

func (h *healthRecordRepository) InsertMany(ctx context.Context, records []models.Record) ([]string, error) {
	if len(records) == 0 {
		return nil, nil
	}

	tx, err := h.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer tx.Rollback()

	// ON CONFLICT DO NOTHING keeps re-delivered pushes idempotent: an
	// already-present uuid stays a single record.
	const insertRecord = `INSERT INTO records (uuid, record_type, start_time, end_time, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(uuid) DO NOTHING;`

	ids := make([]string, 0, len(records))
	for _, record := range records {
		if record.UUID == "" {
			record.UUID = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx, insertRecord,
			record.UUID,
			record.Type,
			record.StartTime.UTC().Format(timeFormat),
			record.EndTime.UTC().Format(timeFormat),
			string(record.Payload),
		)
		if err != nil {
			h.logger.Err(err).Str("record_type", record.Type.String()).Msg("insert record failed")
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		ids = append(ids, record.UUID)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return ids, nil
}

func (h *healthRecordRepository) DeleteByIDs(ctx context.Context, recordType models.RecordType, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sq.Delete("records").
		Where(sq.Eq{"record_type": recordType, "uuid": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingQuery, err)
	}

	// Absent uuids simply match zero rows; deletion stays idempotent.
	if _, err = h.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		record    models.Record
		startTime string
		endTime   string
		payload   sql.NullString
	)

	if err := row.Scan(&record.UUID, &record.Type, &startTime, &endTime, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, err
		}
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// RFC3339Nano accepts the zero-padded storage form and plain
	// whole-second timestamps alike.
	start, err := time.Parse(time.RFC3339Nano, startTime)
	if err != nil {
		return models.Record{}, fmt.Errorf("parse record start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339Nano, endTime)
	if err != nil {
		return models.Record{}, fmt.Errorf("parse record end time: %w", err)
	}

	record.StartTime = start
	record.EndTime = end
	if payload.Valid {
		record.Payload = json.RawMessage(payload.String)
	}
	return record, nil
}
