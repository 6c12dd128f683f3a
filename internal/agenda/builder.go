package agenda

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/smsmy/farm-notifier/internal/schedule"
)

// MaxHorizonDays bounds agenda builds. Realistic horizons are sixty days;
// anything past ten years is rejected as a caller bug rather than iterated.
const MaxHorizonDays = 3650

// Builder iterates the eligibility engine over a date window and produces
// the globally time-ordered agenda.
type Builder struct {
	engine *schedule.Engine
	logger *slog.Logger
	loc    *time.Location
}

// NewBuilder creates a Builder. loc is the location payload timestamps are
// expressed in; nil means UTC.
func NewBuilder(engine *schedule.Engine, logger *slog.Logger, loc *time.Location) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{
		engine: engine,
		logger: logger.With("component", "agenda"),
		loc:    loc,
	}
}

// Build evaluates every rule category for each of horizonDays calendar
// days starting at start (inclusive) and returns all due tasks sorted by
// their full timestamp. The sort is stable, so two tasks scheduled at the
// same instant keep the order their categories were evaluated in.
//
// A failure while evaluating one day is logged and the remaining days are
// still built; partial agendas beat no agenda for a notification system.
func (b *Builder) Build(ctx context.Context, start schedule.Date, horizonDays int, w *schedule.WeatherReport) ([]TaskPayload, error) {
	if horizonDays < 1 {
		return nil, fmt.Errorf("horizon must be at least 1 day, got %d", horizonDays)
	}
	if horizonDays > MaxHorizonDays {
		return nil, fmt.Errorf("horizon of %d days exceeds the maximum of %d", horizonDays, MaxHorizonDays)
	}

	var agenda []TaskPayload
	for i := 0; i < horizonDays; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		day := start.AddDays(i)
		for _, task := range b.engine.TasksForDate(ctx, day, w) {
			agenda = append(agenda, newPayload(task, day, b.loc))
		}
	}

	sort.SliceStable(agenda, func(i, j int) bool {
		return agenda[i].At.Before(agenda[j].At)
	})
	return agenda, nil
}

// BuildForDate returns the payloads for a single day, unsorted beyond the
// category evaluation order. Used by the daily notification pass.
func (b *Builder) BuildForDate(ctx context.Context, d schedule.Date, w *schedule.WeatherReport) []TaskPayload {
	tasks := b.engine.TasksForDate(ctx, d, w)
	payloads := make([]TaskPayload, 0, len(tasks))
	for _, task := range tasks {
		payloads = append(payloads, newPayload(task, d, b.loc))
	}
	return payloads
}
