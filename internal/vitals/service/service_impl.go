package service

import (
	"context"
	"errors"

	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/clock"
	notificationdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/metrics"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/tracing"
	vitalsdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/engine"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Animals    animaldomain.Repository
	Prefs      notificationdomain.PreferenceResolver
	Dispatcher notificationdomain.Dispatcher
}

type Service struct {
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	animals    animaldomain.Repository
	prefs      notificationdomain.PreferenceResolver
	dispatcher notificationdomain.Dispatcher
}

func NewService(p Params) vitalsdomain.Service {
	return &Service{
		log:        p.Log.Named("vitals.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		animals:    p.Animals,
		prefs:      p.Prefs,
		dispatcher: p.Dispatcher,
	}
}

// OnStatsUpdated runs one evaluation pass for an animal:
//
//	previous snapshot -> classify -> evaluate -> resolve preferences ->
//	dispatch surviving events -> record the new snapshot
//
// The pass is best effort end to end. An unknown animal aborts with zero
// events; every other failure degrades and is logged.
func (s *Service) OnStatsUpdated(ctx context.Context, animalID snowflake.ID, update vitalsdomain.StatUpdate) int {
	started := s.clock.Now()
	ctx, span := tracing.Tracer().Start(ctx, "vitals.evaluate")
	defer span.End()

	animal, err := s.animals.FindByID(ctx, animalID)
	if err != nil {
		if errors.Is(err, animaldomain.ErrNotFound) || errors.Is(err, animaldomain.ErrInvalidID) {
			s.log.Info("stat update for unknown animal ignored",
				zap.String("animal_id", animalID.String()),
			)
		} else {
			s.log.Warn("animal lookup failed, evaluation aborted",
				zap.String("animal_id", animalID.String()),
				zap.Error(err),
			)
		}
		return 0
	}

	prev, err := s.animals.LatestSnapshot(ctx, animalID)
	if err != nil {
		// Evaluate as a first reading rather than dropping the update; the
		// healthy baseline means only genuinely bad stats alert.
		s.log.Warn("previous snapshot unavailable, treating as first evaluation",
			zap.String("animal_id", animalID.String()),
			zap.Error(err),
		)
		prev = nil
	}

	curr := engine.Classify(animal, animaldomain.StatSnapshot{
		ID:               s.genID.Generate(),
		AnimalID:         animal.ID,
		HungerPercent:    update.HungerPercent,
		HappinessPercent: update.HappinessPercent,
		HeatPercent:      update.HeatPercent,
		IsOperable:       update.IsOperable,
		IsBreedable:      update.IsBreedable,
		RecordedAt:       s.clock.Now(),
	})
	if update.Source != "" {
		curr.Metadata = datatypes.JSONMap{"source": update.Source}
	}

	events := engine.Evaluate(animal, prev, curr)
	for _, event := range events {
		metrics.Engine().IncEventEmitted(string(event.Type))
	}

	created := 0
	if len(events) > 0 {
		pref := s.prefs.Resolve(ctx, animal.OwnerID)
		for _, event := range events {
			if record := s.dispatcher.Dispatch(ctx, event, pref); record != nil {
				created++
			}
		}
	}

	if err := s.animals.AppendSnapshot(ctx, &curr); err != nil {
		s.log.Error("snapshot append failed",
			zap.String("animal_id", animal.ID.String()),
			zap.Error(err),
		)
	}

	span.SetAttributes(tracing.EvaluationAttributes(animal.ID.String(), animal.OwnerID.String(), len(events))...)
	metrics.Engine().ObserveEvaluation(s.clock.Now().Sub(started))

	if created > 0 {
		s.log.Info("notifications created",
			zap.String("animal_id", animal.ID.String()),
			zap.Int("events", len(events)),
			zap.Int("created", created),
		)
	}
	return created
}
