package dependencies

import (
	"context"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/log"
	"github.com/SyedFrazAli/geoscope/internal/server/db"
)

var Module = fx.Module("dependencies",
	fx.Provide(log.New),
	fx.Provide(db.New),
	fx.Provide(db.NewObservationStore),
	fx.Provide(db.NewSubscriptionStore),
	fx.Provide(db.NewProductStore),
	fx.Provide(db.NewUsageStore),
	fx.Provide(NewExecutors),
	fx.Invoke(func(lc fx.Lifecycle, executor executors.ScheduledExecutor) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return executor.Shutdown(ctx)
			},
		})
	}),
)
