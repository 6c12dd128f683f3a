package config

import (
	"testing"
	"time"

	"github.com/smsmy/farm-notifier/internal/schedule"
)

// validConfig returns a config that compiles cleanly. Tests mutate a copy
// to probe individual failure modes.
func validConfig() *Config {
	return &Config{
		Seasons: map[string][][]string{
			"spring": {{"2025-03-01", "2025-05-31"}},
			"summer": {{"2025-06-01", "2025-09-15"}},
		},
		ChickenSchedule: ChickenSchedule{
			Deworming: DewormingRule{
				SeasonalSchedule: []DewormingEntry{
					{Date: "03-15", Drug: "Ivermectin"},
					{Date: "11-15", Drug: "Albendazole"},
				},
			},
			Sanitization:   &IntervalTaskRule{StartDate: "2025-01-01", IntervalDays: 10},
			WaterStation:   &IntervalTaskRule{StartDate: "2025-01-01", IntervalDays: 3},
			WeeklyCleaning: &IntervalTaskRule{StartDate: "2025-01-06", IntervalDays: 7},
			PipeWaterer: &PipeWatererRule{
				StartDate: "2025-01-01",
				Intervals: map[string]int{
					"change_water": 2,
					"rinse":        7,
					"sanitize":     14,
					"deep_clean":   30,
				},
			},
			Vitamins:    TriggerRule{TriggerConditions: []string{"heat_wave", "cold_wave", "post_deworming", "feed_change"}},
			Coccidiosis: TriggerRule{TriggerConditions: []string{"high_humidity", "cold_night"}},
		},
		Trees: map[string]TreeRule{
			"banana": {StartDate: "2025-03-01", IntervalDays: 30, Fertilizer: "NPK 20-20-20", AmountKg: 0.5},
			"fig":    {Dates: []string{"2025-03-10", "2025-06-10"}, Fertilizers: []string{"compost", "potash", "NPK"}, AmountKg: 1},
		},
	}
}

func TestCompileValid(t *testing.T) {
	t.Parallel()

	rs, err := validConfig().Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if drug, due := rs.Deworming.DrugOn(schedule.NewDate(2025, time.November, 15)); !due || drug != "Albendazole" {
		t.Errorf("DrugOn(2025-11-15) = (%q, %v), want Albendazole", drug, due)
	}
	if rs.Sanitization == nil || !rs.Sanitization.DueOn(schedule.NewDate(2025, time.January, 11)) {
		t.Error("sanitization interval not compiled")
	}
	if rs.WaterStation == nil || rs.WaterStation.Kind != schedule.TaskWaterStation {
		t.Error("water station rule not compiled")
	}
	if rs.SoilTurning != nil {
		t.Error("an omitted section must stay unconfigured")
	}
	if sub, ok := rs.PipeWaterer.TaskOn(schedule.NewDate(2025, time.January, 15)); !ok || sub != schedule.PipeSanitize {
		t.Errorf("pipe waterer TaskOn day 14 = (%q, %v), want sanitize", sub, ok)
	}
	if !rs.Vitamins.HeatWave || !rs.Vitamins.FeedChange || !rs.Coccidiosis.ColdNight {
		t.Errorf("triggers not compiled: %+v / %+v", rs.Vitamins, rs.Coccidiosis)
	}
	if rs.Seasons.SeasonOf(schedule.NewDate(2025, time.July, 1)) != schedule.SeasonSummer {
		t.Error("season calendar not compiled")
	}

	// Trees come back sorted by key.
	if len(rs.Trees) != 2 || rs.Trees[0].Tree != "banana" || rs.Trees[1].Tree != "fig" {
		t.Fatalf("trees = %+v, want [banana fig]", rs.Trees)
	}
	if rs.Trees[1].FertilizerFor(schedule.SeasonAutumn) != "NPK" {
		t.Error("seasonal fertilizer list not compiled")
	}
}

func TestCompileWeatherOverrides(t *testing.T) {
	t.Parallel()

	rs, err := validConfig().Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	offDay := schedule.NewDate(2025, time.January, 2)
	if !rs.WaterStation.DueOn(offDay, &schedule.WeatherReport{HeatWave: true}) {
		t.Error("heat wave must force the water station")
	}
	weeklyDay := schedule.NewDate(2025, time.January, 13)
	if rs.WeeklyCleaning.DueOn(weeklyDay, &schedule.WeatherReport{HighHumidity: true}) {
		t.Error("high humidity must suppress weekly cleaning")
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name: "deworming modes are exclusive",
			mutate: func(c *Config) {
				c.ChickenSchedule.Deworming.StartDate = "2025-01-01"
				c.ChickenSchedule.Deworming.IntervalDays = 45
				c.ChickenSchedule.Deworming.Drugs = []string{"Ivermectin"}
			},
		},
		{
			name: "deworming requires a mode",
			mutate: func(c *Config) {
				c.ChickenSchedule.Deworming = DewormingRule{}
			},
		},
		{
			name: "bad seasonal deworming date",
			mutate: func(c *Config) {
				c.ChickenSchedule.Deworming.SeasonalSchedule[0].Date = "2025-03-15"
			},
		},
		{
			name: "bad interval start date",
			mutate: func(c *Config) {
				c.ChickenSchedule.Sanitization.StartDate = "01/01/2025"
			},
		},
		{
			name: "zero interval",
			mutate: func(c *Config) {
				c.ChickenSchedule.Sanitization.IntervalDays = 0
			},
		},
		{
			name: "unknown season name",
			mutate: func(c *Config) {
				c.Seasons["monsoon"] = [][]string{{"2025-06-01", "2025-08-31"}}
			},
		},
		{
			name: "season range not a pair",
			mutate: func(c *Config) {
				c.Seasons["spring"] = [][]string{{"2025-03-01"}}
			},
		},
		{
			name: "season end precedes start",
			mutate: func(c *Config) {
				c.Seasons["spring"] = [][]string{{"2025-05-31", "2025-03-01"}}
			},
		},
		{
			name: "unknown pipe interval name",
			mutate: func(c *Config) {
				c.ChickenSchedule.PipeWaterer.Intervals["backflush"] = 10
			},
		},
		{
			name: "missing pipe interval",
			mutate: func(c *Config) {
				delete(c.ChickenSchedule.PipeWaterer.Intervals, "deep_clean")
			},
		},
		{
			name: "unknown vitamins trigger",
			mutate: func(c *Config) {
				c.ChickenSchedule.Vitamins.TriggerConditions = []string{"full_moon"}
			},
		},
		{
			name: "unknown coccidiosis trigger",
			mutate: func(c *Config) {
				c.ChickenSchedule.Coccidiosis.TriggerConditions = []string{"heat_wave"}
			},
		},
		{
			name: "tree interval and dates are exclusive",
			mutate: func(c *Config) {
				tr := c.Trees["banana"]
				tr.Dates = []string{"2025-04-01"}
				c.Trees["banana"] = tr
			},
		},
		{
			name: "tree needs a date condition",
			mutate: func(c *Config) {
				c.Trees["banana"] = TreeRule{Fertilizer: "compost", AmountKg: 1}
			},
		},
		{
			name: "tree fertilizer modes are exclusive",
			mutate: func(c *Config) {
				tr := c.Trees["fig"]
				tr.Fertilizer = "compost"
				c.Trees["fig"] = tr
			},
		},
		{
			name: "tree needs a fertilizer",
			mutate: func(c *Config) {
				tr := c.Trees["banana"]
				tr.Fertilizer = ""
				c.Trees["banana"] = tr
			},
		},
		{
			name: "bad tree date",
			mutate: func(c *Config) {
				tr := c.Trees["fig"]
				tr.Dates = []string{"10-03-2025"}
				c.Trees["fig"] = tr
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			if _, err := cfg.Compile(); err == nil {
				t.Error("expected a compile error")
			}
		})
	}
}

func TestCompileLegacyDeworming(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.ChickenSchedule.Deworming = DewormingRule{
		StartDate:    "2025-01-01",
		IntervalDays: 45,
		Drugs:        []string{"Ivermectin", "Levamisole"},
	}

	rs, err := cfg.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// The rotation cycle defaults to 90 days: two 45-day doses per drug.
	anchor := schedule.NewDate(2025, time.January, 1)
	tests := []struct {
		offset int
		want   string
	}{
		{0, "Ivermectin"},
		{45, "Ivermectin"},
		{90, "Levamisole"},
		{180, "Ivermectin"},
	}
	for _, tt := range tests {
		drug, due := rs.Deworming.DrugOn(anchor.AddDays(tt.offset))
		if !due || drug != tt.want {
			t.Errorf("DrugOn(anchor+%d) = (%q, %v), want %q", tt.offset, drug, due, tt.want)
		}
	}
}
