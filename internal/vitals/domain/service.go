// Package domain defines the public contract of the vitals engine.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// StatUpdate is one inbound vitals reading for an animal. Percentages
// outside [0,100] are clamped before evaluation.
type StatUpdate struct {
	HungerPercent    int
	HappinessPercent int
	HeatPercent      int
	IsOperable       bool
	IsBreedable      bool

	// Source labels where the reading came from ("api", "sweep").
	Source string
}

// Service is the engine entry point. OnStatsUpdated evaluates the reading
// against the previous snapshot, dispatches any surviving events and
// records the new snapshot. It returns the number of notifications created
// and never returns an error: every failure mode degrades or is logged so
// a stat update can never fail because alerting did.
type Service interface {
	OnStatsUpdated(ctx context.Context, animalID snowflake.ID, update StatUpdate) int
}
