package sweep

import (
	"context"
	"fmt"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("sweep",
	fx.Provide(FromAppConfig),
	fx.Provide(NewWorker),
	fx.Invoke(registerSchedule),
)

func registerSchedule(lc fx.Lifecycle, appCfg config.Config, cfg Config, w *Worker, log *zap.Logger) {
	if !appCfg.Sweep.Enabled {
		log.Named("sweep").Info("decay sweep disabled")
		return
	}

	runner := cron.New()
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			spec := fmt.Sprintf("@every %s", cfg.Interval)
			_, err := runner.AddFunc(spec, func() {
				if err := w.RunOnce(ctx); err != nil {
					log.Named("sweep").Warn("decay sweep pass failed", zap.Error(err))
				}
			})
			if err != nil {
				cancel()
				return err
			}
			runner.Start()
			log.Named("sweep").Info("decay sweep started", zap.Duration("interval", cfg.Interval))
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-runner.Stop().Done():
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
