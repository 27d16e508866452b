package main

import (
	"github.com/MegaDev007/farmheart-backend-sub000/internal/animal"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/audit"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/clock"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/db"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/mailer"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/migration"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/logger"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/tracing"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/owner"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/realtime"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/seed"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/server"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/sweep"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/vitals"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		owner.Module,
		animal.Module,
		audit.Module,
		realtime.Module,
		mailer.Module,
		notification.Module,
		vitals.Module,
		sweep.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			if err := migration.Run(conn); err != nil {
				return err
			}
			return seed.EnsureDemoHerd(conn, cfg)
		}),

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
