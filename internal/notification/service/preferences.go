package service

import (
	"context"

	auditdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/audit/domain"
	auditservice "github.com/MegaDev007/farmheart-backend-sub000/internal/audit/service"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/cache"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type PreferenceParams struct {
	fx.In

	Log    *zap.Logger
	Config config.Config
	Repo   domain.Repository
	Audit  auditservice.Recorder `optional:"true"`
}

type PreferenceService struct {
	log   *zap.Logger
	cfg   config.NotifyConfig
	repo  domain.Repository
	audit auditservice.Recorder
	cache cache.Cache[snowflake.ID, domain.ChannelPreference]
}

func NewPreferenceService(p PreferenceParams) domain.PreferenceResolver {
	var prefCache cache.Cache[snowflake.ID, domain.ChannelPreference] = cache.Disabled[snowflake.ID, domain.ChannelPreference]{}
	if p.Config.Notify.PreferenceCacheTTL > 0 {
		prefCache = cache.NewTTLCache[snowflake.ID, domain.ChannelPreference]()
	}
	return &PreferenceService{
		log:   p.Log.Named("notification.preferences"),
		cfg:   p.Config.Notify,
		repo:  p.Repo,
		audit: p.Audit,
		cache: prefCache,
	}
}

// Resolve returns the owner's preferences, lazily creating the default row.
// Storage failures degrade to the default rather than aborting the caller:
// losing a preference read must not silently disable all notifications.
func (s *PreferenceService) Resolve(ctx context.Context, ownerID snowflake.ID) domain.ChannelPreference {
	if cached, ok := s.cache.Get(ownerID); ok {
		return cached
	}

	pref, err := s.repo.GetPreference(ctx, ownerID)
	if err == domain.ErrPreferenceNotFound {
		pref, err = s.repo.EnsurePreference(ctx, domain.DefaultPreference(ownerID))
	}
	if err != nil {
		s.log.Warn("preference lookup failed, using defaults",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return domain.DefaultPreference(ownerID)
	}

	s.cache.Set(ownerID, *pref, s.cfg.PreferenceCacheTTL)
	return *pref
}

func (s *PreferenceService) Update(ctx context.Context, pref domain.ChannelPreference) (*domain.ChannelPreference, error) {
	updated, err := s.repo.UpdatePreference(ctx, pref)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(pref.OwnerID)

	if s.audit != nil {
		s.audit.Record(ctx, pref.OwnerID, auditdomain.ActionPreferenceUpdated, "preference", pref.OwnerID.String(), map[string]any{
			"in_app_enabled": updated.InAppEnabled,
			"email_enabled":  updated.EmailEnabled,
		})
	}
	return updated, nil
}
