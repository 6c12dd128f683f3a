package schedule

import (
	"context"
	"io"
	"log/slog"
)

// Ruleset is the fully compiled schedule configuration. It is built once
// at startup by the config package; every date string has been parsed and
// every interval validated by then, so evaluation never needs defensive
// per-access fallbacks. Nil rule pointers mean the task is not configured.
type Ruleset struct {
	Seasons SeasonCalendar

	Deworming    *DewormingSchedule
	Sanitization *IntervalRule

	WaterStation   *MaintenanceRule
	WeeklyCleaning *MaintenanceRule
	SoilTurning    *MaintenanceRule
	Ventilation    *MaintenanceRule
	FeederCleaning *MaintenanceRule

	PipeWaterer *PipeWatererSchedule

	Vitamins    VitaminsTriggers
	Coccidiosis CoccidiosisTriggers

	Trees []FertilizationRule
}

// Engine evaluates the ruleset for single dates. It is stateless across
// calls and never reads the system clock: the reference date is always an
// explicit parameter.
type Engine struct {
	rules  *Ruleset
	state  StateStore
	logger *slog.Logger
}

// NewEngine builds an engine over a compiled ruleset. state may be nil
// when no feed-change marker is available.
func NewEngine(rules *Ruleset, state StateStore, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if state == nil {
		state = NoState{}
	}
	return &Engine{
		rules:  rules,
		state:  state,
		logger: logger.With("component", "engine"),
	}
}

// SeasonOf resolves the season for a date using the configured calendar.
func (e *Engine) SeasonOf(d Date) Season {
	return e.rules.Seasons.SeasonOf(d)
}

// ShouldDeworm reports whether deworming is due on d, and which drug.
func (e *Engine) ShouldDeworm(d Date) (string, bool) {
	return e.rules.Deworming.DrugOn(d)
}

// DewormedYesterday reports whether the day before d was a deworming day.
// Used for the post-deworming vitamins trigger.
func (e *Engine) DewormedYesterday(d Date) bool {
	_, due := e.rules.Deworming.DrugOn(d.AddDays(-1))
	return due
}

// VitaminsDue evaluates the configured vitamins triggers for d. The
// weather-dependent triggers are only consulted when a report is present;
// with no report the reminder can still fire from post-deworming or
// feed-change. The returned reason is the highest-priority trigger that
// held: heat wave, cold wave, post-deworming, feed change.
//
// A state store failure is a per-entity evaluation error: it is logged and
// the feed-change trigger treated as not held, without failing the day's
// other checks.
func (e *Engine) VitaminsDue(ctx context.Context, d Date, w *WeatherReport) (Reason, bool) {
	t := e.rules.Vitamins

	if w != nil {
		if t.HeatWave && w.HeatWave {
			return ReasonHeatWave, true
		}
		if t.ColdWave && w.ColdWave {
			return ReasonColdWave, true
		}
	}
	if t.PostDeworming && e.DewormedYesterday(d) {
		return ReasonPostDeworming, true
	}
	if t.FeedChange {
		changed, err := e.state.FeedChangedOn(ctx, d)
		if err != nil {
			e.logger.Warn("feed-change lookup failed, trigger skipped", "date", d, "error", err)
		} else if changed {
			return ReasonFeedChange, true
		}
	}
	return ReasonPreventive, false
}

// CoccidiosisDue evaluates the coccidiosis triggers. Both depend on
// weather, so a nil report means not due rather than a guess.
func (e *Engine) CoccidiosisDue(w *WeatherReport) (Reason, bool) {
	if w == nil {
		return "", false
	}
	t := e.rules.Coccidiosis
	if t.HighHumidity && w.HighHumidity {
		return ReasonHighHumidity, true
	}
	if t.ColdNight && w.MinTemp48h < coldNightThreshold {
		return ReasonColdNight, true
	}
	return "", false
}

// WeatherDependentTasks returns the vitamins, coccidiosis, and
// sanitization tasks due on d. With a nil weather report only the
// weather-independent subset survives: sanitization-by-interval always
// runs, vitamins can still fire from non-weather triggers, and coccidiosis
// is omitted entirely.
func (e *Engine) WeatherDependentTasks(ctx context.Context, d Date, w *WeatherReport) []DueTask {
	var tasks []DueTask

	if reason, due := e.VitaminsDue(ctx, d, w); due {
		tasks = append(tasks, DueTask{Kind: TaskVitamins, Reason: reason})
	}
	if reason, due := e.CoccidiosisDue(w); due {
		tasks = append(tasks, DueTask{Kind: TaskCoccidiosis, Reason: reason})
	}
	if e.rules.Sanitization != nil && e.rules.Sanitization.DueOn(d) {
		tasks = append(tasks, DueTask{Kind: TaskSanitization})
	}
	return tasks
}

// MaintenanceTasks returns the recurring coop maintenance tasks due on d:
// water station, pipe waterer, weekly cleaning, soil turning, ventilation,
// and feeder cleaning, in that order.
func (e *Engine) MaintenanceTasks(d Date, w *WeatherReport) []DueTask {
	var tasks []DueTask

	if e.rules.WaterStation.DueOn(d, w) {
		tasks = append(tasks, DueTask{Kind: TaskWaterStation})
	}
	if sub, ok := e.rules.PipeWaterer.TaskOn(d); ok {
		tasks = append(tasks, DueTask{Kind: PipeTaskKind(sub)})
	}
	if e.rules.WeeklyCleaning.DueOn(d, w) {
		tasks = append(tasks, DueTask{Kind: TaskWeeklyCleaning})
	}
	if e.rules.SoilTurning.DueOn(d, w) {
		tasks = append(tasks, DueTask{Kind: TaskSoilTurning})
	}
	if e.rules.Ventilation.DueOn(d, w) {
		tasks = append(tasks, DueTask{Kind: TaskVentilation})
	}
	if e.rules.FeederCleaning.DueOn(d, w) {
		tasks = append(tasks, DueTask{Kind: TaskFeederCleaning})
	}
	return tasks
}

// FertilizationTasks evaluates every configured tree for d, independently
// of one another. Trees share no mutable state, so one tree's result can
// never leak into another's.
func (e *Engine) FertilizationTasks(d Date, w *WeatherReport) []DueTask {
	var tasks []DueTask
	season := e.SeasonOf(d)

	for _, tree := range e.rules.Trees {
		if !tree.DueOn(d, w) {
			continue
		}
		tasks = append(tasks, DueTask{
			Kind:       TaskFertilizer,
			Tree:       tree.Tree,
			Fertilizer: tree.FertilizerFor(season),
			AmountKg:   tree.AmountKg,
		})
	}
	return tasks
}

// TasksForDate returns everything due on d, in category evaluation order:
// deworming, weather-gated tasks, maintenance, fertilization. The agenda
// builder relies on this order for its stable tie-break.
func (e *Engine) TasksForDate(ctx context.Context, d Date, w *WeatherReport) []DueTask {
	var tasks []DueTask

	if drug, due := e.ShouldDeworm(d); due {
		tasks = append(tasks, DueTask{Kind: TaskDeworming, Drug: drug})
	}
	tasks = append(tasks, e.WeatherDependentTasks(ctx, d, w)...)
	tasks = append(tasks, e.MaintenanceTasks(d, w)...)
	tasks = append(tasks, e.FertilizationTasks(d, w)...)
	return tasks
}
