package config

import (
	"fmt"
	"sort"

	"github.com/smsmy/farm-notifier/internal/schedule"
)

// defaultDewormingCycleDays is the rotation cycle of the legacy deworming
// mode: the drug advances once per 90-day cycle.
const defaultDewormingCycleDays = 90

// Compile resolves every date string and interval of the loaded
// configuration into the engine's typed ruleset. All errors here are
// fatal: evaluation never runs against a partially parsed rule.
func (c *Config) Compile() (*schedule.Ruleset, error) {
	rs := &schedule.Ruleset{}

	seasons, err := compileSeasons(c.Seasons)
	if err != nil {
		return nil, fmt.Errorf("%w: seasons: %v", ErrConfiguration, err)
	}
	rs.Seasons = seasons

	deworming, err := compileDeworming(c.ChickenSchedule.Deworming)
	if err != nil {
		return nil, fmt.Errorf("%w: deworming: %v", ErrConfiguration, err)
	}
	rs.Deworming = deworming

	sanitization, err := compileInterval(c.ChickenSchedule.Sanitization)
	if err != nil {
		return nil, fmt.Errorf("%w: sanitization: %v", ErrConfiguration, err)
	}
	rs.Sanitization = sanitization

	maintenance := []struct {
		name     string
		rule     *IntervalTaskRule
		kind     schedule.TaskKind
		override func(w *schedule.WeatherReport) schedule.OverrideDecision
		dst      **schedule.MaintenanceRule
	}{
		{"water_station", c.ChickenSchedule.WaterStation, schedule.TaskWaterStation, waterStationOverride, &rs.WaterStation},
		{"weekly_cleaning", c.ChickenSchedule.WeeklyCleaning, schedule.TaskWeeklyCleaning, weeklyCleaningOverride, &rs.WeeklyCleaning},
		{"soil_turning", c.ChickenSchedule.SoilTurning, schedule.TaskSoilTurning, nil, &rs.SoilTurning},
		{"ventilation", c.ChickenSchedule.Ventilation, schedule.TaskVentilation, ventilationOverride, &rs.Ventilation},
		{"feeder_cleaning", c.ChickenSchedule.FeederCleaning, schedule.TaskFeederCleaning, nil, &rs.FeederCleaning},
	}
	for _, m := range maintenance {
		if m.rule == nil {
			continue
		}
		interval, err := compileInterval(m.rule)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfiguration, m.name, err)
		}
		*m.dst = &schedule.MaintenanceRule{
			Kind:       m.kind,
			Recurrence: *interval,
			Override:   m.override,
		}
	}

	if c.ChickenSchedule.PipeWaterer != nil {
		pipe, err := compilePipeWaterer(c.ChickenSchedule.PipeWaterer)
		if err != nil {
			return nil, fmt.Errorf("%w: pipe_waterer: %v", ErrConfiguration, err)
		}
		rs.PipeWaterer = pipe
	}

	rs.Vitamins, err = compileVitaminsTriggers(c.ChickenSchedule.Vitamins.TriggerConditions)
	if err != nil {
		return nil, fmt.Errorf("%w: vitamins: %v", ErrConfiguration, err)
	}
	rs.Coccidiosis, err = compileCoccidiosisTriggers(c.ChickenSchedule.Coccidiosis.TriggerConditions)
	if err != nil {
		return nil, fmt.Errorf("%w: coccidiosis: %v", ErrConfiguration, err)
	}

	rs.Trees, err = compileTrees(c.Trees)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return rs, nil
}

func compileSeasons(raw map[string][][]string) (schedule.SeasonCalendar, error) {
	var cal schedule.SeasonCalendar
	for name, ranges := range raw {
		var dst *[]schedule.DateRange
		switch name {
		case "spring":
			dst = &cal.Spring
		case "summer":
			dst = &cal.Summer
		case "autumn":
			dst = &cal.Autumn
		case "winter":
			dst = &cal.Winter
		default:
			return cal, fmt.Errorf("unknown season %q (expected spring, summer, autumn, or winter)", name)
		}
		for i, pair := range ranges {
			if len(pair) != 2 {
				return cal, fmt.Errorf("season %s range %d: expected [start, end], got %d elements", name, i, len(pair))
			}
			start, err := schedule.ParseDate(pair[0])
			if err != nil {
				return cal, fmt.Errorf("season %s range %d: %v", name, i, err)
			}
			end, err := schedule.ParseDate(pair[1])
			if err != nil {
				return cal, fmt.Errorf("season %s range %d: %v", name, i, err)
			}
			if end.Before(start) {
				return cal, fmt.Errorf("season %s range %d: end %s precedes start %s", name, i, end, start)
			}
			*dst = append(*dst, schedule.DateRange{Start: start, End: end})
		}
	}
	return cal, nil
}

func compileDeworming(d DewormingRule) (*schedule.DewormingSchedule, error) {
	seasonal := len(d.SeasonalSchedule) > 0
	legacy := d.StartDate != "" || d.IntervalDays > 0 || len(d.Drugs) > 0

	switch {
	case seasonal && legacy:
		return nil, fmt.Errorf("seasonal_schedule and interval rotation are mutually exclusive; configure one")
	case seasonal:
		entries := make([]schedule.DewormingEntry, 0, len(d.SeasonalSchedule))
		for i, e := range d.SeasonalSchedule {
			md, err := schedule.ParseMonthDay(e.Date)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %v", i, err)
			}
			entries = append(entries, schedule.DewormingEntry{Day: md, Drug: e.Drug})
		}
		return schedule.NewSeasonalDeworming(entries)
	case legacy:
		anchor, err := schedule.ParseDate(d.StartDate)
		if err != nil {
			return nil, err
		}
		cycle := d.CycleDays
		if cycle == 0 {
			cycle = defaultDewormingCycleDays
		}
		return schedule.NewRotatingDeworming(anchor, d.IntervalDays, d.Drugs, cycle)
	default:
		return nil, fmt.Errorf("either seasonal_schedule or start_date/interval_days/drugs is required")
	}
}

func compileInterval(r *IntervalTaskRule) (*schedule.IntervalRule, error) {
	anchor, err := schedule.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	rule, err := schedule.NewIntervalRule(anchor, r.IntervalDays)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func compilePipeWaterer(r *PipeWatererRule) (*schedule.PipeWatererSchedule, error) {
	anchor, err := schedule.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	intervals := make(map[schedule.PipeTask]int, len(r.Intervals))
	for name, iv := range r.Intervals {
		switch task := schedule.PipeTask(name); task {
		case schedule.PipeChangeWater, schedule.PipeRinse, schedule.PipeSanitize, schedule.PipeDeepClean:
			intervals[task] = iv
		default:
			return nil, fmt.Errorf("unknown interval %q", name)
		}
	}
	return schedule.NewPipeWatererSchedule(anchor, intervals)
}

func compileVitaminsTriggers(names []string) (schedule.VitaminsTriggers, error) {
	var t schedule.VitaminsTriggers
	for _, name := range names {
		switch name {
		case "heat_wave":
			t.HeatWave = true
		case "cold_wave":
			t.ColdWave = true
		case "post_deworming":
			t.PostDeworming = true
		case "feed_change":
			t.FeedChange = true
		default:
			return t, fmt.Errorf("unknown trigger condition %q", name)
		}
	}
	return t, nil
}

func compileCoccidiosisTriggers(names []string) (schedule.CoccidiosisTriggers, error) {
	var t schedule.CoccidiosisTriggers
	for _, name := range names {
		switch name {
		case "high_humidity":
			t.HighHumidity = true
		case "cold_night":
			t.ColdNight = true
		default:
			return t, fmt.Errorf("unknown trigger condition %q", name)
		}
	}
	return t, nil
}

// compileTrees builds the fertilization rules in sorted key order so the
// agenda is deterministic regardless of map iteration.
func compileTrees(raw map[string]TreeRule) ([]schedule.FertilizationRule, error) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rules := make([]schedule.FertilizationRule, 0, len(keys))
	for _, key := range keys {
		rule, err := compileTree(key, raw[key])
		if err != nil {
			return nil, fmt.Errorf("tree %s: %v", key, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func compileTree(key string, t TreeRule) (schedule.FertilizationRule, error) {
	rule := schedule.FertilizationRule{
		Tree:        key,
		MaxTemp:     t.MaxTemp,
		Fertilizer:  t.Fertilizer,
		Fertilizers: t.Fertilizers,
		AmountKg:    t.AmountKg,
	}

	hasInterval := t.StartDate != "" || t.IntervalDays > 0
	hasDates := len(t.Dates) > 0
	switch {
	case hasInterval && hasDates:
		return rule, fmt.Errorf("start_date/interval_days and dates are mutually exclusive")
	case hasInterval:
		anchor, err := schedule.ParseDate(t.StartDate)
		if err != nil {
			return rule, err
		}
		interval, err := schedule.NewIntervalRule(anchor, t.IntervalDays)
		if err != nil {
			return rule, err
		}
		rule.Recurrence = interval
	case hasDates:
		dates := make([]schedule.Date, 0, len(t.Dates))
		for _, s := range t.Dates {
			d, err := schedule.ParseDate(s)
			if err != nil {
				return rule, err
			}
			dates = append(dates, d)
		}
		list, err := schedule.NewDateListRule(dates)
		if err != nil {
			return rule, err
		}
		rule.Recurrence = list
	default:
		return rule, fmt.Errorf("either start_date/interval_days or dates is required")
	}

	if t.Fertilizer != "" && len(t.Fertilizers) > 0 {
		return rule, fmt.Errorf("fertilizer and fertilizers are mutually exclusive")
	}
	if t.Fertilizer == "" && len(t.Fertilizers) == 0 {
		return rule, fmt.Errorf("a fertilizer (or seasonal fertilizers list) is required")
	}
	return rule, nil
}

// Weather overrides for the maintenance rules.

// waterStationOverride forces a cleaning during a heat wave: algae growth
// in the troughs does not wait for the interval.
func waterStationOverride(w *schedule.WeatherReport) schedule.OverrideDecision {
	if w.HeatWave {
		return schedule.OverrideForce
	}
	return schedule.OverrideNone
}

// weeklyCleaningOverride postpones the weekly cleaning under high
// humidity; working wet litter just spreads the mud around.
func weeklyCleaningOverride(w *schedule.WeatherReport) schedule.OverrideDecision {
	if w.HighHumidity {
		return schedule.OverrideSuppress
	}
	return schedule.OverrideNone
}

// ventilationOverride forces a ventilation check in extreme weather.
func ventilationOverride(w *schedule.WeatherReport) schedule.OverrideDecision {
	if w.HeatWave || w.ColdWave {
		return schedule.OverrideForce
	}
	return schedule.OverrideNone
}
