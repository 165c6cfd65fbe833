package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	OtelEnabled           bool   `toml:"otel_enabled"`

	// storage
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`

	// http
	AllowedOrigins              []string `toml:"allowed_origins"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	ApiRateLimitAllowedPerMin   int      `toml:"api_rate_limit_allowed_per_min"`
	LoginSessionTTLHours        int      `toml:"login_session_ttl_hours"`

	// set validation
	OutlierPct       float64 `toml:"outlier_pct"`
	SuspiciousLowPct float64 `toml:"suspicious_low_pct"`
	RecentWindowDays int     `toml:"recent_window_days"`

	// progress
	ProgressRebuildIntervalSec int `toml:"progress_rebuild_interval_sec"`
	ExerciseCacheTTLSec        int `toml:"exercise_cache_ttl_sec"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied and validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.ApiRateLimitAllowedPerMin == 0 {
		c.ApiRateLimitAllowedPerMin = 300
	}
	if c.LoginSessionTTLHours == 0 {
		c.LoginSessionTTLHours = 24 * 7
	}
	if c.OutlierPct == 0 {
		c.OutlierPct = 0.15
	}
	if c.SuspiciousLowPct == 0 {
		c.SuspiciousLowPct = 0.30
	}
	if c.RecentWindowDays == 0 {
		c.RecentWindowDays = 30
	}
	if c.ProgressRebuildIntervalSec == 0 {
		c.ProgressRebuildIntervalSec = 300
	}
	if c.ExerciseCacheTTLSec == 0 {
		c.ExerciseCacheTTLSec = 600
	}
}

func (c *Config) Validate() error {
	var err error
	if c.Port < 0 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
		err = multierr.Append(err, errors.New("postgres host, port and db name are required"))
	}
	if c.RedisHost == "" || c.RedisPort == "" {
		err = multierr.Append(err, errors.New("redis host and port are required"))
	}
	if c.OutlierPct < 0 {
		err = multierr.Append(err, fmt.Errorf("outlier_pct must not be negative: %f", c.OutlierPct))
	}
	if c.SuspiciousLowPct < 0 || c.SuspiciousLowPct >= 1 {
		err = multierr.Append(err, fmt.Errorf("suspicious_low_pct must be in [0, 1): %f", c.SuspiciousLowPct))
	}
	if c.RecentWindowDays < 0 {
		err = multierr.Append(err, fmt.Errorf("recent_window_days must not be negative: %d", c.RecentWindowDays))
	}
	return err
}

func (c *Config) LoginSessionTTL() time.Duration {
	return time.Duration(c.LoginSessionTTLHours) * time.Hour
}

func (c *Config) ProgressRebuildInterval() time.Duration {
	return time.Duration(c.ProgressRebuildIntervalSec) * time.Second
}

func (c *Config) ExerciseCacheTTL() time.Duration {
	return time.Duration(c.ExerciseCacheTTLSec) * time.Second
}
