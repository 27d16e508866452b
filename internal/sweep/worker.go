// Package sweep runs the periodic vitals decay pass. It is an external
// driver of the engine: it computes decayed stats per animal and feeds them
// through the same single-entity entry point stat updates use.
package sweep

import (
	"context"
	"time"

	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/clock"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/appcontext"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/metrics"
	vitalsdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Animals animaldomain.Repository
	Vitals  vitalsdomain.Service
	Config  Config `optional:"true"`
}

type Worker struct {
	log     *zap.Logger
	clock   clock.Clock
	animals animaldomain.Repository
	vitals  vitalsdomain.Service
	cfg     Config
}

func NewWorker(p Params) *Worker {
	return &Worker{
		log:     p.Log.Named("sweep.worker"),
		clock:   p.Clock,
		animals: p.Animals,
		vitals:  p.Vitals,
		cfg:     p.Config.withDefaults(),
	}
}

// RunOnce processes one batch of animals due for decay.
func (w *Worker) RunOnce(ctx context.Context) error {
	ctx = appcontext.WithActor(ctx, "system")
	now := w.clock.Now()
	cutoff := now.Add(-w.cfg.Interval)

	if backlog, err := w.animals.CountDueForDecay(ctx, cutoff); err == nil {
		metrics.Engine().SetSweepBacklog(backlog)
	}

	claimed, err := w.animals.ListDueForDecay(ctx, cutoff, now, w.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, animal := range claimed {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.decayOne(ctx, animal, now)
	}
	return nil
}

func (w *Worker) decayOne(ctx context.Context, animal animaldomain.Animal, now time.Time) {
	prev, err := w.animals.LatestSnapshot(ctx, animal.ID)
	if err != nil {
		w.log.Warn("sweep skipped animal, snapshot read failed",
			zap.String("animal_id", animal.ID.String()),
			zap.Error(err),
		)
		metrics.Engine().IncSweepProcessed("failed")
		return
	}

	update, changed := w.decayed(prev, now)
	if !changed {
		metrics.Engine().IncSweepProcessed("skipped")
		return
	}

	w.vitals.OnStatsUpdated(ctx, animal.ID, update)
	metrics.Engine().IncSweepProcessed("decayed")
}

// decayed projects the previous snapshot forward over the elapsed time.
// Returns changed=false when the elapsed time is too short to move any
// stat by a whole percentage point.
func (w *Worker) decayed(prev *animaldomain.StatSnapshot, now time.Time) (vitalsdomain.StatUpdate, bool) {
	base := animaldomain.StatSnapshot{
		HungerPercent:    0,
		HappinessPercent: 100,
		HeatPercent:      0,
		IsOperable:       true,
	}
	elapsed := w.cfg.Interval
	if prev != nil {
		base = *prev
		elapsed = now.Sub(prev.RecordedAt)
	}
	if elapsed <= 0 {
		return vitalsdomain.StatUpdate{}, false
	}

	hours := elapsed.Hours()
	dHunger := int(hours * float64(w.cfg.HungerPerHour))
	dHappiness := int(hours * float64(w.cfg.HappinessPerHour))
	dHeat := int(hours * float64(w.cfg.HeatPerHour))
	if dHunger == 0 && dHappiness == 0 && dHeat == 0 {
		return vitalsdomain.StatUpdate{}, false
	}

	hunger := animaldomain.ClampPercent(base.HungerPercent + dHunger)
	happiness := animaldomain.ClampPercent(base.HappinessPercent - dHappiness)
	heat := animaldomain.ClampPercent(base.HeatPercent + dHeat)

	operable := base.IsOperable
	if hunger >= 100 && happiness <= 0 {
		// Complete neglect takes the animal out of service.
		operable = false
	}

	breedable := base.IsBreedable
	if heat >= 100 && operable {
		breedable = true
	}

	return vitalsdomain.StatUpdate{
		HungerPercent:    hunger,
		HappinessPercent: happiness,
		HeatPercent:      heat,
		IsOperable:       operable,
		IsBreedable:      breedable,
		Source:           "sweep",
	}, true
}
