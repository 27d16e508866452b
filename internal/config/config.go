// Package config loads runtime configuration from the environment with an
// optional YAML overlay file pointed at by FARMHEART_CONFIG.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

// Config is the root runtime configuration.
type Config struct {
	Environment string `yaml:"environment"`
	HTTPAddr    string `yaml:"http_addr"`
	DatabaseURL string `yaml:"database_url"`

	Sweep   SweepConfig   `yaml:"sweep"`
	Notify  NotifyConfig  `yaml:"notify"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Tracing TracingConfig `yaml:"tracing"`

	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

// SweepConfig controls the periodic vitals decay sweep.
type SweepConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Interval  time.Duration `yaml:"interval"`
	BatchSize int           `yaml:"batch_size"`

	// Decay rates in percentage points per hour of elapsed time.
	HungerPerHour    int `yaml:"hunger_per_hour"`
	HappinessPerHour int `yaml:"happiness_per_hour"`
	HeatPerHour      int `yaml:"heat_per_hour"`
}

// NotifyConfig controls alert dedup and preference caching.
type NotifyConfig struct {
	CooldownWindow     time.Duration `yaml:"cooldown_window"`
	PreferenceCacheTTL time.Duration `yaml:"preference_cache_ttl"`
}

// SMTPConfig configures outbound notification email.
type SMTPConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	From     string `yaml:"from"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// TracingConfig configures the OTLP trace exporter.
type TracingConfig struct {
	Enabled          bool    `yaml:"enabled"`
	ExporterEndpoint string  `yaml:"exporter_endpoint"`
	ExporterProtocol string  `yaml:"exporter_protocol"`
	SamplingRatio    float64 `yaml:"sampling_ratio"`
}

func Default() Config {
	return Config{
		Environment: "development",
		HTTPAddr:    ":8080",
		DatabaseURL: "farmheart.db",
		Sweep: SweepConfig{
			Enabled:          true,
			Interval:         5 * time.Minute,
			BatchSize:        100,
			HungerPerHour:    4,
			HappinessPerHour: 2,
			HeatPerHour:      3,
		},
		Notify: NotifyConfig{
			CooldownWindow:     time.Hour,
			PreferenceCacheTTL: time.Minute,
		},
		SMTP: SMTPConfig{
			Port: 587,
			From: "alerts@farmheart.io",
		},
		Tracing: TracingConfig{
			ExporterProtocol: "grpc",
			SamplingRatio:    0.1,
		},
		RateLimitPerMinute: 120,
	}
}

// Load builds the configuration: defaults, then the YAML file if present,
// then environment variables. A .env file is honoured in development.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("FARMHEART_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func applyEnv(cfg *Config) {
	setString(&cfg.Environment, "FARMHEART_ENV")
	setString(&cfg.HTTPAddr, "FARMHEART_HTTP_ADDR")
	setString(&cfg.DatabaseURL, "DATABASE_URL")

	setBool(&cfg.Sweep.Enabled, "FARMHEART_SWEEP_ENABLED")
	setDuration(&cfg.Sweep.Interval, "FARMHEART_SWEEP_INTERVAL")
	setInt(&cfg.Sweep.BatchSize, "FARMHEART_SWEEP_BATCH_SIZE")
	setInt(&cfg.Sweep.HungerPerHour, "FARMHEART_DECAY_HUNGER_PER_HOUR")
	setInt(&cfg.Sweep.HappinessPerHour, "FARMHEART_DECAY_HAPPINESS_PER_HOUR")
	setInt(&cfg.Sweep.HeatPerHour, "FARMHEART_DECAY_HEAT_PER_HOUR")

	setDuration(&cfg.Notify.CooldownWindow, "FARMHEART_NOTIFY_COOLDOWN")
	setDuration(&cfg.Notify.PreferenceCacheTTL, "FARMHEART_PREFERENCE_CACHE_TTL")

	setBool(&cfg.SMTP.Enabled, "FARMHEART_SMTP_ENABLED")
	setString(&cfg.SMTP.Host, "FARMHEART_SMTP_HOST")
	setInt(&cfg.SMTP.Port, "FARMHEART_SMTP_PORT")
	setString(&cfg.SMTP.From, "FARMHEART_SMTP_FROM")
	setString(&cfg.SMTP.Username, "FARMHEART_SMTP_USERNAME")
	setString(&cfg.SMTP.Password, "FARMHEART_SMTP_PASSWORD")

	setBool(&cfg.Tracing.Enabled, "FARMHEART_TRACING_ENABLED")
	setString(&cfg.Tracing.ExporterEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.Tracing.ExporterProtocol, "OTEL_EXPORTER_OTLP_PROTOCOL")
	setFloat(&cfg.Tracing.SamplingRatio, "FARMHEART_TRACING_SAMPLING_RATIO")

	setInt(&cfg.RateLimitPerMinute, "FARMHEART_RATE_LIMIT_PER_MINUTE")
}

func setString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		*dst = parsed
	}
}

func setFloat(dst *float64, key string) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return
	}
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		*dst = parsed
	}
}

func setBool(dst *bool, key string) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return
	}
	if parsed, err := strconv.ParseBool(value); err == nil {
		*dst = parsed
	}
}

func setDuration(dst *time.Duration, key string) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return
	}
	if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
		*dst = parsed
	}
}
