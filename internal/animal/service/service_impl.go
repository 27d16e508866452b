package service

import (
	"context"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	auditdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/audit/domain"
	auditservice "github.com/MegaDev007/farmheart-backend-sub000/internal/audit/service"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	Repo  domain.Repository
	Audit auditservice.Recorder `optional:"true"`
}

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	audit auditservice.Recorder
}

func NewService(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("animal.service"),
		repo:  p.Repo,
		audit: p.Audit,
	}
}

func (s *Service) GetByID(ctx context.Context, ownerID, id snowflake.ID) (*domain.Animal, error) {
	animal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID != 0 && animal.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return animal, nil
}

// Retire moves an active animal into the retired state. The transition is
// one-directional; the vitals engine picks up the edge on the next snapshot.
func (s *Service) Retire(ctx context.Context, ownerID, id snowflake.ID) (*domain.Animal, error) {
	return s.transition(ctx, ownerID, id, domain.LifecycleRetired, auditdomain.ActionAnimalRetired)
}

// Archive moves an active animal into the archived state, which is terminal
// and silent.
func (s *Service) Archive(ctx context.Context, ownerID, id snowflake.ID) (*domain.Animal, error) {
	return s.transition(ctx, ownerID, id, domain.LifecycleArchived, auditdomain.ActionAnimalArchived)
}

func (s *Service) transition(ctx context.Context, ownerID, id snowflake.ID, to domain.LifecycleState, action string) (*domain.Animal, error) {
	animal, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if animal.LifecycleState.Terminal() {
		return nil, domain.ErrInvalidTransition
	}

	changed, err := s.repo.SetLifecycle(ctx, animal.ID, domain.LifecycleActive, to)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Raced with another transition; re-read and report accordingly.
		return nil, domain.ErrInvalidTransition
	}

	animal.LifecycleState = to
	if s.audit != nil {
		s.audit.Record(ctx, animal.OwnerID, action, "animal", animal.ID.String(), map[string]any{
			"name":  animal.Name,
			"state": string(to),
		})
	}
	s.log.Info("lifecycle transition",
		zap.String("animal_id", animal.ID.String()),
		zap.String("state", string(to)),
	)
	return animal, nil
}
