package service

import (
	"context"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/clock"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/mailer"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/render"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/logger"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/metrics"
	ownerdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/owner/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/realtime"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/engine"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type DispatcherParams struct {
	fx.In

	Log    *zap.Logger
	Config config.Config
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Owners ownerdomain.Repository
	Email  render.EmailRenderer
	Mailer mailer.Sender
	Sink   realtime.Sink `optional:"true"`
}

type DispatcherService struct {
	log    *zap.Logger
	cfg    config.NotifyConfig
	genID  *snowflake.Node
	clock  clock.Clock
	repo   domain.Repository
	owners ownerdomain.Repository
	email  render.EmailRenderer
	mailer mailer.Sender
	sink   realtime.Sink
}

func NewDispatcher(p DispatcherParams) domain.Dispatcher {
	return &DispatcherService{
		log:    p.Log.Named("notification.dispatcher"),
		cfg:    p.Config.Notify,
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		owners: p.Owners,
		email:  p.Email,
		mailer: p.Mailer,
		sink:   p.Sink,
	}
}

// Dispatch applies channel eligibility, suppresses duplicates inside the
// cooldown window, persists the record and fans it out. Push and email are
// fire-and-forget: their failure never rolls back the stored record.
func (s *DispatcherService) Dispatch(ctx context.Context, event engine.Event, pref domain.ChannelPreference) *domain.NotificationRecord {
	inApp := pref.InAppEnabled
	email := pref.EmailEnabled && event.Type.EmailEligible()
	if !inApp && !email {
		metrics.Engine().IncNotification("skipped")
		return nil
	}

	rendered := render.Notification(event)
	record := &domain.NotificationRecord{
		ID:        s.genID.Generate(),
		OwnerID:   event.OwnerID,
		AnimalID:  event.AnimalID,
		Title:     rendered.Title,
		Message:   rendered.Message,
		Severity:  string(event.Severity),
		Category:  event.Type.Category(),
		CreatedAt: s.clock.Now(),
	}
	if event.Payload != nil {
		record.Metadata = datatypes.JSONMap(event.Payload.Fields())
	}

	inserted, err := s.repo.InsertUnlessRecent(ctx, record, s.cfg.CooldownWindow)
	if err != nil {
		// Dedup check unavailable: fail open so owners are not silently
		// starved of alerts.
		s.log.Warn("duplicate check failed, inserting without suppression",
			zap.String("category", record.Category),
			zap.Error(err),
		)
		if insertErr := s.repo.Insert(ctx, record); insertErr != nil {
			s.log.Error("notification insert failed",
				zap.String("category", record.Category),
				zap.String("owner_id", record.OwnerID.String()),
				zap.Error(insertErr),
			)
			metrics.Engine().IncNotification("failed")
			return nil
		}
		inserted = true
	}
	if !inserted {
		metrics.Engine().IncNotification("suppressed")
		return nil
	}

	if inApp && s.sink != nil {
		s.sink.Publish(record.OwnerID, record)
	}
	if email {
		s.sendEmail(ctx, event, record)
	}

	metrics.Engine().IncNotification("created")
	return record
}

func (s *DispatcherService) sendEmail(ctx context.Context, event engine.Event, record *domain.NotificationRecord) {
	owner, err := s.owners.FindByID(ctx, record.OwnerID)
	if err != nil {
		s.log.Warn("email skipped, owner lookup failed",
			zap.String("owner_id", record.OwnerID.String()),
			zap.Error(err),
		)
		return
	}

	body, err := s.email.RenderHTML(render.EmailInput{
		Title:    record.Title,
		Message:  record.Message,
		Severity: event.Severity,
		SentAt:   record.CreatedAt,
	})
	if err != nil {
		s.log.Warn("email render failed",
			zap.String("category", record.Category),
			zap.Error(err),
		)
		return
	}

	if err := s.mailer.Send(ctx, owner.Email, record.Title, body); err != nil {
		s.log.Warn("email delivery failed",
			zap.String("to", logger.MaskEmail(owner.Email)),
			zap.String("category", record.Category),
			zap.Error(err),
		)
	}
}
