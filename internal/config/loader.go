package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrConfiguration marks fatal configuration problems. Startup aborts on
// it; a misconfigured rule is never downgraded to "feature disabled".
var ErrConfiguration = errors.New("configuration error")

// Load reads configuration from:
//  1. Built-in defaults
//  2. The YAML file at path
//  3. FARM_* environment variables
//
// and validates the result. The config file itself is optional only in
// the sense that viper tolerates its absence; validation will still fail
// without the required schedule sections.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("FARM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrConfiguration, path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfiguration, path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("telegram.pacing", time.Second)

	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5/forecast")
	v.SetDefault("weather.timeout", 10*time.Second)

	v.SetDefault("database.path", "farm.db")

	v.SetDefault("server.enabled", true)
	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.feed_path", "docs/notifications.json")
	v.SetDefault("server.horizon_days", 30)

	v.SetDefault("scheduler.timezone", "UTC")
	v.SetDefault("scheduler.tasks.daily_notifications.enabled", true)
	v.SetDefault("scheduler.tasks.daily_notifications.schedule", "0 6 * * *")
	v.SetDefault("scheduler.tasks.feed_publish.enabled", true)
	v.SetDefault("scheduler.tasks.feed_publish.schedule", "15 6 * * *")
	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 3 * * 0")
}
