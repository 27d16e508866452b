package audit

import (
	"github.com/MegaDev007/farmheart-backend-sub000/internal/audit/repository"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
