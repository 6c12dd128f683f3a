package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/smsmy/farm-notifier/internal/schedule"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// MarkFeedChanged records that the flock's feed changed on the given day.
	// Recording the same day twice is a no-op.
	MarkFeedChanged(ctx context.Context, day schedule.Date) error

	// FeedChangedOn reports whether a feed change was recorded for the day.
	// Satisfies schedule.StateStore.
	FeedChangedOn(ctx context.Context, day schedule.Date) (bool, error)

	// RecordRun records one completed evaluation pass.
	RecordRun(ctx context.Context, day schedule.Date, taskCount int) error

	// LastRun returns the most recent recorded run. Returns nil, nil when
	// no run has been recorded yet.
	LastRun(ctx context.Context) (*Run, error)

	// RecordSent records a delivered notification for auditing.
	RecordSent(ctx context.Context, day schedule.Date, taskKind, detail string) error

	// SentOn retrieves the notifications delivered on the given day.
	SentOn(ctx context.Context, day schedule.Date) ([]SentNotification, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// MarkFeedChanged records that the feed changed on the given day.
func (s *sqlxStore) MarkFeedChanged(ctx context.Context, day schedule.Date) error {
	if day.IsZero() {
		return fmt.Errorf("feed change day cannot be zero")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	query := `
        INSERT INTO feed_changes (changed_on, created_at)
        VALUES (?, ?)
        ON CONFLICT (changed_on) DO NOTHING;
    `
	_, err := s.db.ExecContext(ctx, query, day.String(), time.Now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error recording feed change", "day", day, "error", err)
		return fmt.Errorf("failed to record feed change for %s: %w", day, err)
	}

	s.logger.InfoContext(ctx, "Feed change recorded", "day", day)
	return nil
}

// FeedChangedOn reports whether a feed change was recorded for the day.
func (s *sqlxStore) FeedChangedOn(ctx context.Context, day schedule.Date) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	var exists bool
	query := `SELECT 1 FROM feed_changes WHERE changed_on = ? LIMIT 1`
	err := s.db.GetContext(ctx, &exists, query, day.String())

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while checking feed change",
			"day", day, "error", err)
		return false, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error checking feed change", "day", day, "error", err)
		return false, fmt.Errorf("failed to check feed change for %s: %w", day, err)
	}

	return true, nil
}

// RecordRun records one completed evaluation pass.
func (s *sqlxStore) RecordRun(ctx context.Context, day schedule.Date, taskCount int) error {
	if day.IsZero() {
		return fmt.Errorf("run day cannot be zero")
	}
	if taskCount < 0 {
		return fmt.Errorf("task count cannot be negative")
	}

	query := `
        INSERT INTO runs (run_date, task_count, created_at)
        VALUES (?, ?, ?);
    `
	_, err := s.db.ExecContext(ctx, query, day.String(), taskCount, time.Now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error recording run", "day", day, "error", err)
		return fmt.Errorf("failed to record run for %s: %w", day, err)
	}

	s.logger.DebugContext(ctx, "Run recorded", "day", day, "task_count", taskCount)
	return nil
}

// LastRun returns the most recent recorded run.
func (s *sqlxStore) LastRun(ctx context.Context) (*Run, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var run Run
	query := `
        SELECT id, run_date, task_count, created_at
        FROM runs
        ORDER BY id DESC
        LIMIT 1;
    `
	err := s.db.GetContext(ctx, &run, query)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No runs recorded yet")
		return nil, nil

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching last run", "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting last run", "error", err)
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}

	return &run, nil
}

// RecordSent records a delivered notification.
func (s *sqlxStore) RecordSent(ctx context.Context, day schedule.Date, taskKind, detail string) error {
	if day.IsZero() {
		return fmt.Errorf("sent day cannot be zero")
	}
	if taskKind == "" {
		return fmt.Errorf("task kind cannot be empty")
	}

	query := `
        INSERT INTO sent_notifications (sent_on, task_kind, detail, created_at)
        VALUES (?, ?, ?, ?);
    `
	_, err := s.db.ExecContext(ctx, query, day.String(), taskKind, detail, time.Now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error recording sent notification",
			"day", day, "task_kind", taskKind, "error", err)
		return fmt.Errorf("failed to record sent notification %s on %s: %w", taskKind, day, err)
	}

	return nil
}

// SentOn retrieves the notifications delivered on the given day.
func (s *sqlxStore) SentOn(ctx context.Context, day schedule.Date) ([]SentNotification, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var sent []SentNotification
	query := `
        SELECT id, sent_on, task_kind, detail, created_at
        FROM sent_notifications
        WHERE sent_on = ?
        ORDER BY id ASC;
    `
	err := s.db.SelectContext(ctx, &sent, query, day.String())

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching sent notifications",
			"day", day, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting sent notifications", "day", day, "error", err)
		return nil, fmt.Errorf("failed to get sent notifications for %s: %w", day, err)
	}

	return sent, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	}

	return nil
}
