package sweep

import (
	"time"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
)

// Config controls the decay sweep loop.
type Config struct {
	Interval  time.Duration
	BatchSize int

	HungerPerHour    int
	HappinessPerHour int
	HeatPerHour      int
}

func FromAppConfig(cfg config.Config) Config {
	return Config{
		Interval:         cfg.Sweep.Interval,
		BatchSize:        cfg.Sweep.BatchSize,
		HungerPerHour:    cfg.Sweep.HungerPerHour,
		HappinessPerHour: cfg.Sweep.HappinessPerHour,
		HeatPerHour:      cfg.Sweep.HeatPerHour,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 5 * time.Minute
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.HungerPerHour <= 0 {
		c.HungerPerHour = 4
	}
	if c.HappinessPerHour <= 0 {
		c.HappinessPerHour = 2
	}
	if c.HeatPerHour <= 0 {
		c.HeatPerHour = 3
	}
	return c
}
