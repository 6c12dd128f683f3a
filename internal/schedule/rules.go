package schedule

import (
	"fmt"
	"sort"
)

// Recurrence decides whether a task recurs on a given date. Implementations
// are pure: the same date always yields the same answer.
type Recurrence interface {
	DueOn(d Date) bool
}

// IntervalRule recurs every IntervalDays starting at Anchor. The anchor day
// itself is due (day-zero modulo), and dates before the anchor are never
// due regardless of the interval.
type IntervalRule struct {
	Anchor       Date
	IntervalDays int
}

// NewIntervalRule validates and builds an interval recurrence. A
// non-positive interval is a configuration error, never a silently
// disabled rule.
func NewIntervalRule(anchor Date, intervalDays int) (IntervalRule, error) {
	if anchor.IsZero() {
		return IntervalRule{}, fmt.Errorf("interval rule: anchor date is required")
	}
	if intervalDays < 1 {
		return IntervalRule{}, fmt.Errorf("interval rule: interval_days must be >= 1, got %d", intervalDays)
	}
	return IntervalRule{Anchor: anchor, IntervalDays: intervalDays}, nil
}

// DueOn reports whether d is a whole number of intervals after the anchor.
func (r IntervalRule) DueOn(d Date) bool {
	diff := d.DaysSince(r.Anchor)
	return diff >= 0 && diff%r.IntervalDays == 0
}

// DateListRule recurs on an explicit set of calendar dates.
type DateListRule struct {
	dates map[Date]struct{}
}

// NewDateListRule builds a date-list recurrence. The list must not be empty.
func NewDateListRule(dates []Date) (DateListRule, error) {
	if len(dates) == 0 {
		return DateListRule{}, fmt.Errorf("date list rule: at least one date is required")
	}
	set := make(map[Date]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return DateListRule{dates: set}, nil
}

// DueOn reports whether d is a member of the list.
func (r DateListRule) DueOn(d Date) bool {
	_, ok := r.dates[d]
	return ok
}

// Dates returns the configured dates in ascending order.
func (r DateListRule) Dates() []Date {
	out := make([]Date, 0, len(r.dates))
	for d := range r.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// SeasonalDateRule recurs on fixed month-day points every year.
type SeasonalDateRule struct {
	days map[MonthDay]struct{}
}

// NewSeasonalDateRule builds a month-day recurrence.
func NewSeasonalDateRule(days []MonthDay) (SeasonalDateRule, error) {
	if len(days) == 0 {
		return SeasonalDateRule{}, fmt.Errorf("seasonal date rule: at least one month-day is required")
	}
	set := make(map[MonthDay]struct{}, len(days))
	for _, md := range days {
		set[md] = struct{}{}
	}
	return SeasonalDateRule{days: set}, nil
}

// DueOn matches d's month and day, ignoring the year.
func (r SeasonalDateRule) DueOn(d Date) bool {
	_, ok := r.days[d.MonthDay()]
	return ok
}

// OverrideDecision is a weather override's verdict for a maintenance task.
type OverrideDecision int

const (
	// OverrideNone defers to the task's recurrence rule.
	OverrideNone OverrideDecision = iota
	// OverrideForce makes the task due regardless of its recurrence.
	OverrideForce
	// OverrideSuppress blocks the task even when its recurrence matches.
	OverrideSuppress
)

// MaintenanceRule is a recurring coop task, optionally gated by a weather
// predicate that can force it in (water station during a heat wave) or
// suppress it (weekly cleaning under high humidity). The override is only
// consulted when a weather report is available.
type MaintenanceRule struct {
	Kind       TaskKind
	Recurrence Recurrence
	Override   func(w *WeatherReport) OverrideDecision
}

// DueOn evaluates the rule for a date. A nil weather report skips the
// override and falls back to pure recurrence.
func (r *MaintenanceRule) DueOn(d Date, w *WeatherReport) bool {
	if r == nil {
		return false
	}
	if r.Override != nil && w != nil {
		switch r.Override(w) {
		case OverrideForce:
			return true
		case OverrideSuppress:
			return false
		}
	}
	return r.Recurrence.DueOn(d)
}

// PipeTask is a pipe-waterer maintenance sub-kind.
type PipeTask string

const (
	PipeChangeWater PipeTask = "change_water"
	PipeRinse       PipeTask = "rinse"
	PipeSanitize    PipeTask = "sanitize"
	PipeDeepClean   PipeTask = "deep_clean"
)

// pipePriority is the fixed evaluation order. A deep clean subsumes a
// sanitize, which subsumes a rinse, which subsumes a water change, so the
// first matching sub-kind wins and the rest are suppressed for the day.
var pipePriority = [...]PipeTask{PipeDeepClean, PipeSanitize, PipeRinse, PipeChangeWater}

// PipeWatererSchedule is a single anchor date with one interval per
// maintenance sub-kind. At most one pipe task fires per day.
type PipeWatererSchedule struct {
	Anchor    Date
	Intervals map[PipeTask]int
}

// NewPipeWatererSchedule validates the anchor and all four sub-intervals.
func NewPipeWatererSchedule(anchor Date, intervals map[PipeTask]int) (*PipeWatererSchedule, error) {
	if anchor.IsZero() {
		return nil, fmt.Errorf("pipe waterer: anchor date is required")
	}
	for _, sub := range pipePriority {
		iv, ok := intervals[sub]
		if !ok {
			return nil, fmt.Errorf("pipe waterer: missing interval for %q", sub)
		}
		if iv < 1 {
			return nil, fmt.Errorf("pipe waterer: interval for %q must be >= 1, got %d", sub, iv)
		}
	}
	copied := make(map[PipeTask]int, len(intervals))
	for k, v := range intervals {
		copied[k] = v
	}
	return &PipeWatererSchedule{Anchor: anchor, Intervals: copied}, nil
}

// TaskOn returns the single sub-kind due on d, if any. Sub-kinds are
// checked strictly in priority order (deep_clean, sanitize, rinse,
// change_water) and evaluation stops at the first remainder hit, so a
// lower-priority task never fires alongside a higher one.
func (s *PipeWatererSchedule) TaskOn(d Date) (PipeTask, bool) {
	if s == nil {
		return "", false
	}
	diff := d.DaysSince(s.Anchor)
	if diff < 0 {
		return "", false
	}
	for _, sub := range pipePriority {
		if diff%s.Intervals[sub] == 0 {
			return sub, true
		}
	}
	return "", false
}

// DewormingEntry is one seasonal deworming appointment: a fixed month-day
// and the drug administered on it.
type DewormingEntry struct {
	Day  MonthDay
	Drug string
}

// DewormingSchedule decides deworming days and the drug for each. The
// seasonal month-day list is the production mode; the legacy mode (anchor +
// interval with a drug rotation over fixed cycles) exists only for
// configurations predating the seasonal list. A configuration carries
// exactly one of the two, enforced at load.
type DewormingSchedule struct {
	Seasonal []DewormingEntry

	Anchor       Date
	IntervalDays int
	Drugs        []string
	CycleDays    int
}

// NewSeasonalDeworming builds the seasonal-mode schedule.
func NewSeasonalDeworming(entries []DewormingEntry) (*DewormingSchedule, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("deworming: seasonal schedule must have at least one entry")
	}
	for i, e := range entries {
		if e.Drug == "" {
			return nil, fmt.Errorf("deworming: entry %d has no drug", i)
		}
	}
	return &DewormingSchedule{Seasonal: entries}, nil
}

// NewRotatingDeworming builds the legacy interval-mode schedule with a
// drug rotation advancing once per cycle.
func NewRotatingDeworming(anchor Date, intervalDays int, drugs []string, cycleDays int) (*DewormingSchedule, error) {
	if anchor.IsZero() {
		return nil, fmt.Errorf("deworming: anchor date is required")
	}
	if intervalDays < 1 {
		return nil, fmt.Errorf("deworming: interval_days must be >= 1, got %d", intervalDays)
	}
	if len(drugs) == 0 {
		return nil, fmt.Errorf("deworming: drug rotation must have at least one drug")
	}
	if cycleDays < 1 {
		return nil, fmt.Errorf("deworming: cycle_days must be >= 1, got %d", cycleDays)
	}
	return &DewormingSchedule{Anchor: anchor, IntervalDays: intervalDays, Drugs: drugs, CycleDays: cycleDays}, nil
}

// DrugOn returns the drug due on d and whether deworming is due at all.
// In seasonal mode the matching entry's drug is authoritative.
func (s *DewormingSchedule) DrugOn(d Date) (string, bool) {
	if s == nil {
		return "", false
	}
	if len(s.Seasonal) > 0 {
		md := d.MonthDay()
		for _, e := range s.Seasonal {
			if e.Day == md {
				return e.Drug, true
			}
		}
		return "", false
	}

	diff := d.DaysSince(s.Anchor)
	if diff < 0 || diff%s.IntervalDays != 0 {
		return "", false
	}
	cycle := diff / s.CycleDays
	return s.Drugs[cycle%len(s.Drugs)], true
}

// FertilizationRule schedules fertilizer applications for one tree. The
// date condition is an interval or explicit date list; weather gates the
// result when a report is available: the forecast must be marked as a good
// fertilizer window, and trees with a max_temp ceiling skip days whose 48h
// maximum exceeds it.
type FertilizationRule struct {
	Tree       string
	Recurrence Recurrence

	MaxTemp *float64

	// Fertilizer is the fixed product; Fertilizers lists one product per
	// season instead. Exactly one of the two is set.
	Fertilizer  string
	Fertilizers []string
	AmountKg    float64
}

// DueOn evaluates the tree's date condition and weather gates for d.
func (r FertilizationRule) DueOn(d Date, w *WeatherReport) bool {
	if !r.Recurrence.DueOn(d) {
		return false
	}
	if w != nil {
		if !w.GoodFertilizerTime {
			return false
		}
		if r.MaxTemp != nil && w.MaxTemp48h > *r.MaxTemp {
			return false
		}
	}
	return true
}

// FertilizerFor picks the product for the given season. Selection over a
// seasonal list is deterministic: the season index modulo the list length,
// independent of call order.
func (r FertilizationRule) FertilizerFor(season Season) string {
	if len(r.Fertilizers) > 0 {
		return r.Fertilizers[season.FertilizerIndex()%len(r.Fertilizers)]
	}
	return r.Fertilizer
}

// VitaminsTriggers is the configured set of conditions that prompt a
// vitamins-and-electrolytes reminder.
type VitaminsTriggers struct {
	HeatWave      bool
	ColdWave      bool
	PostDeworming bool
	FeedChange    bool
}

// CoccidiosisTriggers is the configured set of conditions that prompt a
// coccidiosis-prevention reminder. Both conditions need weather data.
type CoccidiosisTriggers struct {
	HighHumidity bool
	ColdNight    bool
}

// Reason explains why a triggered task fired. When several vitamins
// triggers hold at once the reported reason is the highest-priority one.
type Reason string

const (
	ReasonHeatWave      Reason = "heat_wave"
	ReasonColdWave      Reason = "cold_wave"
	ReasonPostDeworming Reason = "post_deworming"
	ReasonFeedChange    Reason = "feed_change"
	ReasonPreventive    Reason = "preventive"

	ReasonHighHumidity Reason = "high_humidity"
	ReasonColdNight    Reason = "cold_night"
)
