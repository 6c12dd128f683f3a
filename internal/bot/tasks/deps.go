// Package tasks implements the scheduled jobs of the farm notifier:
// the daily notification pass, the feed publish, and database
// maintenance.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/smsmy/farm-notifier/internal/agenda"
	"github.com/smsmy/farm-notifier/internal/config"
	"github.com/smsmy/farm-notifier/internal/database"
	"github.com/smsmy/farm-notifier/internal/messages"
	"github.com/smsmy/farm-notifier/internal/schedule"
)

// WeatherSource yields the current condition snapshot, or nil when
// weather data is unavailable.
type WeatherSource interface {
	Report(ctx context.Context) *schedule.WeatherReport
}

// Sender delivers rendered notification batches.
type Sender interface {
	SendBatch(ctx context.Context, msgs []messages.Message) (int, error)
}

// Deps contains all dependencies required by scheduled tasks.
type Deps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Builder  *agenda.Builder
	Weather  WeatherSource
	Renderer *messages.Renderer
	Notifier Sender

	// Location is the farm's wall-clock timezone; Now is injectable for
	// tests and defaults to time.Now.
	Location *time.Location
	Now      func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) location() *time.Location {
	if d.Location != nil {
		return d.Location
	}
	return time.UTC
}
