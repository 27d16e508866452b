package notification

import (
	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/render"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/repository"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(repository.Provide),
	fx.Provide(render.NewEmailRenderer),
	fx.Provide(service.NewPreferenceService),
	fx.Provide(service.NewDispatcher),
	fx.Provide(service.NewInbox),
)
