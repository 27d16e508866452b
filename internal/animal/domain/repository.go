package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindByID(ctx context.Context, id snowflake.ID) (*Animal, error)

	// LatestSnapshot returns nil without error when the animal has no
	// recorded snapshot yet.
	LatestSnapshot(ctx context.Context, animalID snowflake.ID) (*StatSnapshot, error)

	// AppendSnapshot writes one immutable snapshot row. On schema drift it
	// degrades to a reduced-column insert instead of failing the caller.
	AppendSnapshot(ctx context.Context, snap *StatSnapshot) error

	// SetLifecycle applies a one-directional transition and reports whether
	// a row actually changed.
	SetLifecycle(ctx context.Context, id snowflake.ID, from, to LifecycleState) (bool, error)

	// ListDueForDecay returns active animals whose last decay pass is older
	// than the cutoff, claiming each one by advancing last_decay_at.
	ListDueForDecay(ctx context.Context, cutoff time.Time, now time.Time, limit int) ([]Animal, error)

	// CountDueForDecay sizes the sweep backlog for metrics.
	CountDueForDecay(ctx context.Context, cutoff time.Time) (int64, error)
}
