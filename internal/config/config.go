// Package config provides configuration loading, validation, and
// compilation for the farm notifier. Configuration is read once at
// startup from YAML plus FARM_* environment overrides, validated
// structurally, and then compiled into the typed ruleset the eligibility
// engine runs on. Any malformed date string or non-positive interval
// aborts startup: a broken rule must never silently become "task not due".
package config

import (
	"time"
)

// Config is the top-level application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`

	Scheduler SchedulerConfig `mapstructure:"scheduler"`

	Seasons         map[string][][]string `mapstructure:"seasons"`
	ChickenSchedule ChickenSchedule       `mapstructure:"chicken_schedule" validate:"required"`
	Trees           map[string]TreeRule   `mapstructure:"trees_fertilizer_schedule"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig identifies the bot and the destination chat.
type TelegramConfig struct {
	Token  string        `mapstructure:"token"   validate:"required"`
	ChatID int64         `mapstructure:"chat_id" validate:"required"`
	Pacing time.Duration `mapstructure:"pacing"  validate:"min=0"`

	// ImageDir holds the per-drug and per-task illustration images sent
	// alongside reminders. Empty disables photo attachments.
	ImageDir string `mapstructure:"image_dir"`
}

// WeatherConfig points at the OpenWeatherMap forecast API. An empty
// APIKey disables weather fetching; the engine then runs calendar-only.
type WeatherConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	City    string        `mapstructure:"city"`
	Country string        `mapstructure:"country"`
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"min=0"`
}

// DatabaseConfig locates the SQLite state database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ServerConfig controls the countdown HTTP API and the static feed.
type ServerConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`

	// FeedPath is where the static notifications feed JSON is written.
	FeedPath string `mapstructure:"feed_path"`

	// HorizonDays is the default agenda window served by the API and
	// written to the feed.
	HorizonDays int `mapstructure:"horizon_days" validate:"min=1,max=3650"`
}

// SchedulerConfig holds the cron specs for background jobs.
type SchedulerConfig struct {
	Timezone string                `mapstructure:"timezone"`
	Tasks    map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables one scheduled job and sets its cron spec.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// ChickenSchedule groups every coop care rule. Optional sections left out
// of the file simply leave that task unconfigured.
type ChickenSchedule struct {
	Deworming      DewormingRule     `mapstructure:"deworming"       validate:"required"`
	Sanitization   *IntervalTaskRule `mapstructure:"sanitization"    validate:"required"`
	WaterStation   *IntervalTaskRule `mapstructure:"water_station"`
	WeeklyCleaning *IntervalTaskRule `mapstructure:"weekly_cleaning"`
	SoilTurning    *IntervalTaskRule `mapstructure:"soil_turning"`
	Ventilation    *IntervalTaskRule `mapstructure:"ventilation"`
	FeederCleaning *IntervalTaskRule `mapstructure:"feeder_cleaning"`
	PipeWaterer    *PipeWatererRule  `mapstructure:"pipe_waterer"`
	Vitamins       TriggerRule       `mapstructure:"vitamins"`
	Coccidiosis    TriggerRule       `mapstructure:"coccidiosis"`
}

// IntervalTaskRule is an anchor date plus recurrence interval.
type IntervalTaskRule struct {
	StartDate    string `mapstructure:"start_date"    validate:"required"`
	IntervalDays int    `mapstructure:"interval_days" validate:"required,min=1"`
}

// DewormingRule configures one of the two deworming modes: the seasonal
// fixed-date list, or the legacy anchor+interval drug rotation. Exactly
// one mode may be present; Compile rejects configurations with both.
type DewormingRule struct {
	SeasonalSchedule []DewormingEntry `mapstructure:"seasonal_schedule" validate:"dive"`

	StartDate    string   `mapstructure:"start_date"`
	IntervalDays int      `mapstructure:"interval_days" validate:"min=0"`
	Drugs        []string `mapstructure:"drugs"`
	CycleDays    int      `mapstructure:"cycle_days"    validate:"min=0"`
}

// DewormingEntry is one seasonal deworming appointment: an MM-DD date and
// the drug given on it.
type DewormingEntry struct {
	Date string `mapstructure:"date" validate:"required"`
	Drug string `mapstructure:"drug" validate:"required"`
}

// PipeWatererRule is the pipe-waterer anchor and its four sub-intervals.
type PipeWatererRule struct {
	StartDate string         `mapstructure:"start_date" validate:"required"`
	Intervals map[string]int `mapstructure:"intervals"  validate:"required"`
}

// TriggerRule lists the named conditions that arm a weather- or
// event-triggered task.
type TriggerRule struct {
	TriggerConditions []string `mapstructure:"trigger_conditions"`
}

// TreeRule is one tree's fertilization schedule. The date condition is
// either start_date+interval_days or an explicit dates list.
type TreeRule struct {
	StartDate    string   `mapstructure:"start_date"`
	IntervalDays int      `mapstructure:"interval_days" validate:"min=0"`
	Dates        []string `mapstructure:"dates"`

	MaxTemp     *float64 `mapstructure:"max_temp"`
	Fertilizer  string   `mapstructure:"fertilizer"`
	Fertilizers []string `mapstructure:"fertilizers"`
	AmountKg    float64  `mapstructure:"amount_kg" validate:"min=0"`
}
