package service

import (
	"context"
	"time"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/audit/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/appcontext"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Recorder appends audit entries. Writes are best effort: a failed audit
// insert is logged and never surfaces to the caller.
type Recorder interface {
	Record(ctx context.Context, ownerID snowflake.ID, action, targetType, targetID string, metadata map[string]any)
}

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) Recorder {
	return &Service{
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, ownerID snowflake.ID, action, targetType, targetID string, metadata map[string]any) {
	actorType := domain.ActorTypeOwner
	if appcontext.ActorFromContext(ctx) == "system" {
		actorType = domain.ActorTypeSystem
	}

	entry := &domain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  actorType,
		Action:     action,
		TargetType: targetType,
		CreatedAt:  time.Now().UTC(),
	}
	if ownerID != 0 {
		entry.OwnerID = &ownerID
	}
	if targetID != "" {
		entry.TargetID = &targetID
	}
	if metadata != nil {
		entry.Metadata = datatypes.JSONMap(metadata)
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.log.Warn("audit insert failed",
			zap.String("action", action),
			zap.String("target_id", targetID),
			zap.Error(err),
		)
	}
}
