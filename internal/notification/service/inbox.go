package service

import (
	"context"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type InboxParams struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

type InboxService struct {
	log  *zap.Logger
	repo domain.Repository
}

func NewInbox(p InboxParams) domain.Inbox {
	return &InboxService{
		log:  p.Log.Named("notification.inbox"),
		repo: p.Repo,
	}
}

func (s *InboxService) List(ctx context.Context, filter domain.ListFilter) ([]domain.NotificationRecord, error) {
	return s.repo.List(ctx, filter)
}

func (s *InboxService) MarkRead(ctx context.Context, ownerID, id snowflake.ID) error {
	updated, err := s.repo.MarkRead(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrNotFound
	}
	return nil
}

func (s *InboxService) MarkDismissed(ctx context.Context, ownerID, id snowflake.ID) error {
	updated, err := s.repo.MarkDismissed(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrNotFound
	}
	return nil
}
