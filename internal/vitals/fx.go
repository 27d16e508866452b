package vitals

import (
	"github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vitals.service",
	fx.Provide(service.NewService),
)
