package owner

import (
	"github.com/MegaDev007/farmheart-backend-sub000/internal/owner/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("owner",
	fx.Provide(repository.Provide),
)
