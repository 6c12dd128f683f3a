package database

import "time"

// Dates are stored as YYYY-MM-DD text so SQLite string comparison orders
// them chronologically.

// FeedChange records a day on which the flock's feed was changed. The
// eligibility engine reads it back to decide whether vitamins are due on
// that day.
type FeedChange struct {
	ID        uint      `db:"id"`
	ChangedOn string    `db:"changed_on"`
	CreatedAt time.Time `db:"created_at"`
}

// Run records one daily evaluation pass and how many tasks it produced.
type Run struct {
	ID        uint      `db:"id"`
	RunDate   string    `db:"run_date"`
	TaskCount int       `db:"task_count"`
	CreatedAt time.Time `db:"created_at"`
}

// SentNotification records one notification delivered to the chat, used
// for auditing and duplicate diagnosis.
type SentNotification struct {
	ID        uint      `db:"id"`
	SentOn    string    `db:"sent_on"`
	TaskKind  string    `db:"task_kind"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}
