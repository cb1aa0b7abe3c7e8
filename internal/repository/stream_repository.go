package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// StreamListFilters narrows a host's stream listing.
type StreamListFilters struct {
	Status *domain.StreamStatus
	Limit  int
	Offset int
}

// HostStreamCounts aggregates stream totals for the seller dashboard.
type HostStreamCounts struct {
	Total    int64
	Active   int64
	Recorded int64
}

// StreamRepository defines persistence access for livestream sessions.
type StreamRepository interface {
	Create(ctx context.Context, stream *domain.Stream) error
	GetByCallID(ctx context.Context, callID string) (*domain.Stream, error)
	GetByCallIDAndHost(ctx context.Context, callID, hostID string) (*domain.Stream, error)
	ListActive(ctx context.Context) ([]domain.Stream, error)
	ListByHost(ctx context.Context, hostID string, filters StreamListFilters) ([]domain.Stream, int64, error)
	ListRecorded(ctx context.Context, hostID string) ([]domain.Stream, error)
	End(ctx context.Context, callID, hostID string, endedAt time.Time) (*domain.Stream, error)
	SetRecording(ctx context.Context, callID string, rec domain.Recording, endedAt time.Time) error
	CountByHost(ctx context.Context, hostID string) (HostStreamCounts, error)
	RecentByHost(ctx context.Context, hostID string, limit int) ([]domain.Stream, error)
}

type streamRepository struct {
	pool *pgxpool.Pool
}

// NewStreamRepository returns a Postgres-backed implementation.
func NewStreamRepository(pool *pgxpool.Pool) StreamRepository {
	return &streamRepository{pool: pool}
}

const streamColumns = `id, call_id, host_id, title, status, is_recording_enabled,
    recording_file_name, recording_file_path, recording_duration, recording_file_size, recording_at,
    created_at, ended_at`

func scanStream(row pgx.Row) (*domain.Stream, error) {
	var (
		s        domain.Stream
		fileName *string
		filePath *string
		duration *int
		fileSize *int64
		recAt    *time.Time
	)
	if err := row.Scan(
		&s.ID,
		&s.CallID,
		&s.HostID,
		&s.Title,
		&s.Status,
		&s.IsRecordingEnabled,
		&fileName,
		&filePath,
		&duration,
		&fileSize,
		&recAt,
		&s.CreatedAt,
		&s.EndedAt,
	); err != nil {
		return nil, err
	}
	if fileName != nil && *fileName != "" {
		rec := domain.Recording{FileName: *fileName}
		if filePath != nil {
			rec.FilePath = *filePath
		}
		if duration != nil {
			rec.DurationSeconds = *duration
		}
		if fileSize != nil {
			rec.FileSizeBytes = *fileSize
		}
		if recAt != nil {
			rec.RecordedAt = *recAt
		}
		s.Recording = &rec
	}
	return &s, nil
}

func (r *streamRepository) Create(ctx context.Context, stream *domain.Stream) error {
	const query = `
        INSERT INTO streams (call_id, host_id, title, status, is_recording_enabled)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		stream.CallID,
		stream.HostID,
		stream.Title,
		stream.Status,
		stream.IsRecordingEnabled,
	).Scan(&stream.ID, &stream.CreatedAt)
}

func (r *streamRepository) GetByCallID(ctx context.Context, callID string) (*domain.Stream, error) {
	return scanStream(r.pool.QueryRow(ctx,
		`SELECT `+streamColumns+` FROM streams WHERE call_id=$1`, callID))
}

func (r *streamRepository) GetByCallIDAndHost(ctx context.Context, callID, hostID string) (*domain.Stream, error) {
	return scanStream(r.pool.QueryRow(ctx,
		`SELECT `+streamColumns+` FROM streams WHERE call_id=$1 AND host_id=$2`, callID, hostID))
}

func (r *streamRepository) ListActive(ctx context.Context) ([]domain.Stream, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+streamColumns+` FROM streams WHERE status='active' ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStreams(rows)
}

func (r *streamRepository) ListByHost(ctx context.Context, hostID string, filters StreamListFilters) ([]domain.Stream, int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+streamColumns+` FROM streams
         WHERE host_id=$1 AND ($2::TEXT IS NULL OR status=$2)
         ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		hostID, filters.Status, filters.Limit, filters.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	streams, err := collectStreams(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM streams WHERE host_id=$1 AND ($2::TEXT IS NULL OR status=$2)`,
		hostID, filters.Status).Scan(&total); err != nil {
		return nil, 0, err
	}
	return streams, total, nil
}

func (r *streamRepository) ListRecorded(ctx context.Context, hostID string) ([]domain.Stream, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+streamColumns+` FROM streams
         WHERE recording_file_name IS NOT NULL AND ($1 = '' OR host_id=$1)
         ORDER BY recording_at DESC`, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStreams(rows)
}

func (r *streamRepository) End(ctx context.Context, callID, hostID string, endedAt time.Time) (*domain.Stream, error) {
	const query = `
        UPDATE streams SET status='ended', ended_at=$3
        WHERE call_id=$1 AND host_id=$2
        RETURNING ` + streamColumns

	return scanStream(r.pool.QueryRow(ctx, query, callID, hostID, endedAt))
}

func (r *streamRepository) SetRecording(ctx context.Context, callID string, rec domain.Recording, endedAt time.Time) error {
	const query = `
        UPDATE streams
        SET recording_file_name=$2, recording_file_path=$3, recording_duration=$4,
            recording_file_size=$5, recording_at=$6,
            status='ended', ended_at=COALESCE(ended_at, $7)
        WHERE call_id=$1`

	cmd, err := r.pool.Exec(ctx, query,
		callID,
		rec.FileName,
		rec.FilePath,
		rec.DurationSeconds,
		rec.FileSizeBytes,
		rec.RecordedAt,
		endedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *streamRepository) CountByHost(ctx context.Context, hostID string) (HostStreamCounts, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='active'),
               COUNT(*) FILTER (WHERE recording_file_name IS NOT NULL)
        FROM streams WHERE host_id=$1`

	var counts HostStreamCounts
	err := r.pool.QueryRow(ctx, query, hostID).Scan(&counts.Total, &counts.Active, &counts.Recorded)
	return counts, err
}

func (r *streamRepository) RecentByHost(ctx context.Context, hostID string, limit int) ([]domain.Stream, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+streamColumns+` FROM streams WHERE host_id=$1 ORDER BY created_at DESC LIMIT $2`,
		hostID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStreams(rows)
}

func collectStreams(rows pgx.Rows) ([]domain.Stream, error) {
	streams := make([]domain.Stream, 0)
	for rows.Next() {
		s, err := scanStream(rows)
		if err != nil {
			return nil, err
		}
		streams = append(streams, *s)
	}
	return streams, rows.Err()
}
