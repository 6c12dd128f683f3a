// Package agenda builds the time-ordered task agenda over a rolling date
// window and derives the "next due" countdown from it. It consumes the
// schedule engine's verdicts and attaches the canonical per-kind clock
// time and priority every payload carries.
package agenda

import (
	"time"

	"github.com/smsmy/farm-notifier/internal/schedule"
)

// Priority ranks a task for the presentation layer.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TaskPayload is one entry of the agenda: a due task with its scheduled
// timestamp and the kind-specific data the formatting layer needs.
// Payloads are created fresh on every build and never persisted by the
// engine itself.
type TaskPayload struct {
	Kind     schedule.TaskKind `json:"type"`
	Date     schedule.Date     `json:"date"`
	Time     string            `json:"time"`
	At       time.Time         `json:"datetime"`
	Priority Priority          `json:"priority"`

	Drug       string          `json:"drug,omitempty"`
	Reason     schedule.Reason `json:"reason,omitempty"`
	Tree       string          `json:"tree,omitempty"`
	Fertilizer string          `json:"fertilizer,omitempty"`
	AmountKg   float64         `json:"amount_kg,omitempty"`
}

// clockTime is a fixed time of day attached to a task kind.
type clockTime struct {
	hour, minute int
}

func (c clockTime) String() string {
	return time.Date(0, 1, 1, c.hour, c.minute, 0, 0, time.UTC).Format("15:04")
}

// Canonical times of day per task kind. These exist for ordering and
// display; they are independent of when the agenda was computed.
var canonicalTimes = map[schedule.TaskKind]clockTime{
	schedule.TaskDeworming:      {8, 0},
	schedule.TaskVitamins:       {9, 0},
	schedule.TaskCoccidiosis:    {9, 30},
	schedule.TaskSanitization:   {9, 0},
	schedule.TaskWaterStation:   {10, 0},
	schedule.TaskWeeklyCleaning: {11, 0},
	schedule.TaskSoilTurning:    {12, 0},
	schedule.TaskVentilation:    {13, 0},
	schedule.TaskFeederCleaning: {14, 0},

	schedule.TaskPipeChangeWater: {15, 0},
	schedule.TaskPipeRinse:       {15, 0},
	schedule.TaskPipeSanitize:    {15, 0},
	schedule.TaskPipeDeepClean:   {15, 0},

	schedule.TaskFertilizer: {16, 0},
}

// Post-deworming vitamins land half an hour after the deworming slot of
// the previous day, ahead of the regular vitamins time.
var postDewormingVitaminsTime = clockTime{8, 30}

var priorities = map[schedule.TaskKind]Priority{
	schedule.TaskDeworming:   PriorityHigh,
	schedule.TaskCoccidiosis: PriorityHigh,
	schedule.TaskSoilTurning: PriorityLow,
}

// timeFor returns the canonical clock time for a due task.
func timeFor(t schedule.DueTask) clockTime {
	if t.Kind == schedule.TaskVitamins && t.Reason == schedule.ReasonPostDeworming {
		return postDewormingVitaminsTime
	}
	if ct, ok := canonicalTimes[t.Kind]; ok {
		return ct
	}
	return clockTime{12, 0}
}

// priorityFor returns the canonical priority for a task kind; kinds with
// no explicit ranking are medium.
func priorityFor(kind schedule.TaskKind) Priority {
	if p, ok := priorities[kind]; ok {
		return p
	}
	return PriorityMedium
}

// newPayload materializes an engine verdict into an agenda entry for the
// given date.
func newPayload(t schedule.DueTask, d schedule.Date, loc *time.Location) TaskPayload {
	ct := timeFor(t)
	return TaskPayload{
		Kind:       t.Kind,
		Date:       d,
		Time:       ct.String(),
		At:         d.In(loc, ct.hour, ct.minute),
		Priority:   priorityFor(t.Kind),
		Drug:       t.Drug,
		Reason:     t.Reason,
		Tree:       t.Tree,
		Fertilizer: t.Fertilizer,
		AmountKg:   t.AmountKg,
	}
}
