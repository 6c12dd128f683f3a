package schedule

import (
	"testing"
	"time"
)

func TestIntervalRuleDueOn(t *testing.T) {
	t.Parallel()

	rule, err := NewIntervalRule(NewDate(2025, time.January, 1), 15)
	if err != nil {
		t.Fatalf("NewIntervalRule: %v", err)
	}

	tests := []struct {
		name string
		d    Date
		want bool
	}{
		{"anchor day itself", NewDate(2025, time.January, 1), true},
		{"one interval later", NewDate(2025, time.January, 16), true},
		{"two intervals later", NewDate(2025, time.January, 31), true},
		{"off by one", NewDate(2025, time.January, 17), false},
		{"mid interval", NewDate(2025, time.January, 10), false},
		{"day before anchor", NewDate(2024, time.December, 31), false},
		{"exactly one interval before anchor", NewDate(2024, time.December, 17), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := rule.DueOn(tt.d); got != tt.want {
				t.Errorf("DueOn(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestNewIntervalRuleValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewIntervalRule(Date{}, 7); err == nil {
		t.Error("zero anchor must be rejected")
	}
	if _, err := NewIntervalRule(NewDate(2025, time.January, 1), 0); err == nil {
		t.Error("zero interval must be rejected")
	}
	if _, err := NewIntervalRule(NewDate(2025, time.January, 1), -3); err == nil {
		t.Error("negative interval must be rejected")
	}
}

func TestDateListRule(t *testing.T) {
	t.Parallel()

	rule, err := NewDateListRule([]Date{
		NewDate(2025, time.April, 10),
		NewDate(2025, time.March, 5),
	})
	if err != nil {
		t.Fatalf("NewDateListRule: %v", err)
	}

	if !rule.DueOn(NewDate(2025, time.March, 5)) {
		t.Error("listed date must be due")
	}
	if rule.DueOn(NewDate(2025, time.March, 6)) {
		t.Error("unlisted date must not be due")
	}

	dates := rule.Dates()
	if len(dates) != 2 || dates[0] != NewDate(2025, time.March, 5) {
		t.Errorf("Dates() = %v, want ascending order starting 2025-03-05", dates)
	}

	if _, err := NewDateListRule(nil); err == nil {
		t.Error("empty list must be rejected")
	}
}

func TestSeasonalDateRule(t *testing.T) {
	t.Parallel()

	rule, err := NewSeasonalDateRule([]MonthDay{
		{Month: time.March, Day: 20},
		{Month: time.September, Day: 22},
	})
	if err != nil {
		t.Fatalf("NewSeasonalDateRule: %v", err)
	}

	for _, year := range []int{2024, 2025, 2031} {
		if !rule.DueOn(NewDate(year, time.March, 20)) {
			t.Errorf("year %d: march 20 must be due", year)
		}
	}
	if rule.DueOn(NewDate(2025, time.March, 21)) {
		t.Error("adjacent day must not be due")
	}
}

func TestMaintenanceRuleOverrides(t *testing.T) {
	t.Parallel()

	weekly, err := NewIntervalRule(NewDate(2025, time.January, 6), 7)
	if err != nil {
		t.Fatalf("NewIntervalRule: %v", err)
	}
	dueDay := NewDate(2025, time.January, 13)
	offDay := NewDate(2025, time.January, 14)

	forceOnHeat := func(w *WeatherReport) OverrideDecision {
		if w.HeatWave {
			return OverrideForce
		}
		return OverrideNone
	}
	suppressOnHumidity := func(w *WeatherReport) OverrideDecision {
		if w.HighHumidity {
			return OverrideSuppress
		}
		return OverrideNone
	}

	tests := []struct {
		name     string
		override func(*WeatherReport) OverrideDecision
		d        Date
		w        *WeatherReport
		want     bool
	}{
		{"recurrence only, due day", nil, dueDay, nil, true},
		{"recurrence only, off day", nil, offDay, nil, false},
		{"force fires on non-recurrence day", forceOnHeat, offDay, &WeatherReport{HeatWave: true}, true},
		{"force without condition falls through", forceOnHeat, offDay, &WeatherReport{}, false},
		{"suppress blocks a due day", suppressOnHumidity, dueDay, &WeatherReport{HighHumidity: true}, false},
		{"suppress without condition keeps recurrence", suppressOnHumidity, dueDay, &WeatherReport{}, true},
		{"nil weather skips the override entirely", suppressOnHumidity, dueDay, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule := &MaintenanceRule{Kind: TaskWeeklyCleaning, Recurrence: weekly, Override: tt.override}
			if got := rule.DueOn(tt.d, tt.w); got != tt.want {
				t.Errorf("DueOn(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}

	var nilRule *MaintenanceRule
	if nilRule.DueOn(dueDay, nil) {
		t.Error("nil rule must never be due")
	}
}

func TestPipeWatererPriority(t *testing.T) {
	t.Parallel()

	anchor := NewDate(2025, time.January, 1)
	sched, err := NewPipeWatererSchedule(anchor, map[PipeTask]int{
		PipeChangeWater: 2,
		PipeRinse:       7,
		PipeSanitize:    14,
		PipeDeepClean:   30,
	})
	if err != nil {
		t.Fatalf("NewPipeWatererSchedule: %v", err)
	}

	tests := []struct {
		name    string
		offset  int
		want    PipeTask
		wantDue bool
	}{
		{"anchor day: everything aligns, deep clean wins", 0, PipeDeepClean, true},
		{"day 2: change water only", 2, PipeChangeWater, true},
		{"day 14: sanitize beats rinse and change water", 14, PipeSanitize, true},
		{"day 28: rinse beats change water", 28, PipeRinse, true},
		{"day 30: deep clean beats change water", 30, PipeDeepClean, true},
		{"day 3: nothing due", 3, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, due := sched.TaskOn(anchor.AddDays(tt.offset))
			if due != tt.wantDue || got != tt.want {
				t.Errorf("TaskOn(anchor+%d) = (%q, %v), want (%q, %v)", tt.offset, got, due, tt.want, tt.wantDue)
			}
		})
	}

	if _, due := sched.TaskOn(anchor.AddDays(-2)); due {
		t.Error("dates before the anchor must never be due")
	}
}

func TestNewPipeWatererScheduleValidation(t *testing.T) {
	t.Parallel()

	anchor := NewDate(2025, time.January, 1)
	full := map[PipeTask]int{
		PipeChangeWater: 2,
		PipeRinse:       7,
		PipeSanitize:    14,
		PipeDeepClean:   30,
	}

	if _, err := NewPipeWatererSchedule(Date{}, full); err == nil {
		t.Error("zero anchor must be rejected")
	}

	missing := map[PipeTask]int{PipeChangeWater: 2, PipeRinse: 7, PipeSanitize: 14}
	if _, err := NewPipeWatererSchedule(anchor, missing); err == nil {
		t.Error("missing sub-kind interval must be rejected")
	}

	bad := map[PipeTask]int{PipeChangeWater: 0, PipeRinse: 7, PipeSanitize: 14, PipeDeepClean: 30}
	if _, err := NewPipeWatererSchedule(anchor, bad); err == nil {
		t.Error("non-positive interval must be rejected")
	}
}

func TestSeasonalDeworming(t *testing.T) {
	t.Parallel()

	sched, err := NewSeasonalDeworming([]DewormingEntry{
		{Day: MonthDay{Month: time.March, Day: 15}, Drug: "Ivermectin"},
		{Day: MonthDay{Month: time.July, Day: 15}, Drug: "Levamisole"},
		{Day: MonthDay{Month: time.November, Day: 15}, Drug: "Albendazole"},
	})
	if err != nil {
		t.Fatalf("NewSeasonalDeworming: %v", err)
	}

	tests := []struct {
		name    string
		d       Date
		want    string
		wantDue bool
	}{
		{"november entry", NewDate(2025, time.November, 15), "Albendazole", true},
		{"same entry next year", NewDate(2026, time.November, 15), "Albendazole", true},
		{"march entry", NewDate(2025, time.March, 15), "Ivermectin", true},
		{"ordinary day", NewDate(2025, time.November, 14), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, due := sched.DrugOn(tt.d)
			if due != tt.wantDue || got != tt.want {
				t.Errorf("DrugOn(%v) = (%q, %v), want (%q, %v)", tt.d, got, due, tt.want, tt.wantDue)
			}
		})
	}

	if _, err := NewSeasonalDeworming(nil); err == nil {
		t.Error("empty seasonal schedule must be rejected")
	}
	if _, err := NewSeasonalDeworming([]DewormingEntry{{Day: MonthDay{Month: time.May, Day: 1}}}); err == nil {
		t.Error("entry without a drug must be rejected")
	}
}

func TestRotatingDeworming(t *testing.T) {
	t.Parallel()

	anchor := NewDate(2025, time.January, 1)
	sched, err := NewRotatingDeworming(anchor, 45, []string{"Ivermectin", "Levamisole", "Albendazole"}, 90)
	if err != nil {
		t.Fatalf("NewRotatingDeworming: %v", err)
	}

	tests := []struct {
		name    string
		offset  int
		want    string
		wantDue bool
	}{
		{"anchor day, first drug", 0, "Ivermectin", true},
		{"second dose, same cycle", 45, "Ivermectin", true},
		{"first dose of second cycle", 90, "Levamisole", true},
		{"second cycle second dose", 135, "Levamisole", true},
		{"third cycle", 180, "Albendazole", true},
		{"rotation wraps to first drug", 270, "Ivermectin", true},
		{"non-interval day", 44, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, due := sched.DrugOn(anchor.AddDays(tt.offset))
			if due != tt.wantDue || got != tt.want {
				t.Errorf("DrugOn(anchor+%d) = (%q, %v), want (%q, %v)", tt.offset, got, due, tt.want, tt.wantDue)
			}
		})
	}

	if _, due := sched.DrugOn(anchor.AddDays(-45)); due {
		t.Error("dates before the anchor must never be due")
	}

	var nilSched *DewormingSchedule
	if _, due := nilSched.DrugOn(anchor); due {
		t.Error("nil schedule must never be due")
	}
}

func TestFertilizationRuleDueOn(t *testing.T) {
	t.Parallel()

	monthly, err := NewIntervalRule(NewDate(2025, time.March, 1), 30)
	if err != nil {
		t.Fatalf("NewIntervalRule: %v", err)
	}
	ceiling := 35.0
	rule := FertilizationRule{
		Tree:       "banana",
		Recurrence: monthly,
		MaxTemp:    &ceiling,
		Fertilizer: "NPK 20-20-20",
		AmountKg:   0.5,
	}
	dueDay := NewDate(2025, time.March, 31)

	tests := []struct {
		name string
		d    Date
		w    *WeatherReport
		want bool
	}{
		{"good window", dueDay, &WeatherReport{GoodFertilizerTime: true, MaxTemp48h: 28}, true},
		{"bad window blocks", dueDay, &WeatherReport{GoodFertilizerTime: false, MaxTemp48h: 28}, false},
		{"over the tree ceiling", dueDay, &WeatherReport{GoodFertilizerTime: true, MaxTemp48h: 36}, false},
		{"exactly at the ceiling passes", dueDay, &WeatherReport{GoodFertilizerTime: true, MaxTemp48h: 35}, true},
		{"nil weather skips the gates", dueDay, nil, true},
		{"off day, even with perfect weather", dueDay.AddDays(1), &WeatherReport{GoodFertilizerTime: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := rule.DueOn(tt.d, tt.w); got != tt.want {
				t.Errorf("DueOn(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestFertilizerFor(t *testing.T) {
	t.Parallel()

	seasonal := FertilizationRule{
		Tree:        "fig",
		Fertilizers: []string{"compost", "NPK balanced", "potash"},
	}

	tests := []struct {
		season Season
		want   string
	}{
		{SeasonSpring, "compost"},
		{SeasonSummer, "NPK balanced"},
		{SeasonAutumn, "potash"},
		{SeasonWinter, "compost"},
		{SeasonUnknown, "compost"},
	}

	for _, tt := range tests {
		if got := seasonal.FertilizerFor(tt.season); got != tt.want {
			t.Errorf("FertilizerFor(%v) = %q, want %q", tt.season, got, tt.want)
		}
	}

	fixed := FertilizationRule{Tree: "henna", Fertilizer: "compost"}
	for _, s := range []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter} {
		if got := fixed.FertilizerFor(s); got != "compost" {
			t.Errorf("fixed product: FertilizerFor(%v) = %q, want %q", s, got, "compost")
		}
	}
}

func TestSeasonCalendar(t *testing.T) {
	t.Parallel()

	cal := SeasonCalendar{
		Spring: []DateRange{{Start: NewDate(2025, time.March, 1), End: NewDate(2025, time.May, 31)}},
		Summer: []DateRange{{Start: NewDate(2025, time.June, 1), End: NewDate(2025, time.September, 15)}},
		Autumn: []DateRange{{Start: NewDate(2025, time.September, 16), End: NewDate(2025, time.November, 30)}},
		Winter: []DateRange{
			{Start: NewDate(2025, time.December, 1), End: NewDate(2025, time.December, 31)},
			{Start: NewDate(2025, time.January, 1), End: NewDate(2025, time.February, 28)},
		},
	}

	tests := []struct {
		name string
		d    Date
		want Season
	}{
		{"spring middle", NewDate(2025, time.April, 10), SeasonSpring},
		{"summer boundary", NewDate(2025, time.June, 1), SeasonSummer},
		{"autumn start", NewDate(2025, time.September, 16), SeasonAutumn},
		{"winter in december range", NewDate(2025, time.December, 15), SeasonWinter},
		{"winter in january range", NewDate(2025, time.January, 20), SeasonWinter},
		{"outside every range", NewDate(2030, time.April, 1), SeasonUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cal.SeasonOf(tt.d); got != tt.want {
				t.Errorf("SeasonOf(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}
