package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// Timezone is used for calendar days: statistics windows, scheduler checkpoints, dedup keys
	Timezone string `toml:"timezone"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost             string `toml:"redis_host"`
	RedisPort             string `toml:"redis_port"`
	NotificationsRedisKey string `toml:"notifications_redis_key"`
	MaxNotifications      int    `toml:"max_notifications"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// api
	RateLimitAllowedPerMin int    `toml:"rate_limit_allowed_per_min"`
	AllowedOrigin          string `toml:"allowed_origin"`
	StatsCacheTTLSeconds   int    `toml:"stats_cache_ttl_seconds"`
	StatsCacheSizeMB       int    `toml:"stats_cache_size_mb"`

	// reminders
	RemindersEnabled     bool   `toml:"reminders_enabled"`
	ReminderPollInterval string `toml:"reminder_poll_interval"`
	// checkpoint hours are pointers so an explicit 0 (midnight) differs from a missing key
	CycleCheckpointHour      *int `toml:"cycle_checkpoint_hour"`
	InactivityCheckpointHour *int `toml:"inactivity_checkpoint_hour"`
	ActivityCheckpointHour   *int `toml:"activity_checkpoint_hour"`
	RetestCheckpointHour     *int `toml:"retest_checkpoint_hour"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config at path and returns the section for env, with defaults applied.
func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config %s: %w", path, err)
	}
	return fromToml(&tomlConfig, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, tomlContent string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.Decode(tomlContent, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}
	return fromToml(&tomlConfig, env)
}

func fromToml(tomlConfig *Toml, env string) (*Config, error) {
	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("missing config section for env: %s", env)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.NotificationsRedisKey == "" {
		c.NotificationsRedisKey = "cragjournal::notifications"
	}
	if c.MaxNotifications <= 0 {
		c.MaxNotifications = 200
	}
	if c.RateLimitAllowedPerMin <= 0 {
		c.RateLimitAllowedPerMin = 120
	}
	if c.StatsCacheTTLSeconds <= 0 {
		c.StatsCacheTTLSeconds = 60
	}
	if c.StatsCacheSizeMB <= 0 {
		c.StatsCacheSizeMB = 10
	}
	if c.ReminderPollInterval == "" {
		c.ReminderPollInterval = "5m"
	}
	c.CycleCheckpointHour = hourOrDefault(c.CycleCheckpointHour, 9)
	c.InactivityCheckpointHour = hourOrDefault(c.InactivityCheckpointHour, 9)
	c.ActivityCheckpointHour = hourOrDefault(c.ActivityCheckpointHour, 10)
	c.RetestCheckpointHour = hourOrDefault(c.RetestCheckpointHour, 10)
}

func hourOrDefault(hour *int, def int) *int {
	if hour != nil {
		return hour
	}
	return &def
}

func (c *Config) validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if _, err := c.PollInterval(); err != nil {
		return err
	}
	for name, hour := range map[string]*int{
		"cycle_checkpoint_hour":      c.CycleCheckpointHour,
		"inactivity_checkpoint_hour": c.InactivityCheckpointHour,
		"activity_checkpoint_hour":   c.ActivityCheckpointHour,
		"retest_checkpoint_hour":     c.RetestCheckpointHour,
	} {
		if *hour < 0 || *hour > 23 {
			return fmt.Errorf("invalid %s: %d", name, *hour)
		}
	}
	return nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) PollInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.ReminderPollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid reminder_poll_interval %q: %w", c.ReminderPollInterval, err)
	}
	if d < time.Second {
		return 0, fmt.Errorf("reminder_poll_interval must be at least 1s, got %s", d)
	}
	return d, nil
}
