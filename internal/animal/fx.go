package animal

import (
	"github.com/MegaDev007/farmheart-backend-sub000/internal/animal/repository"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/animal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("animal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
