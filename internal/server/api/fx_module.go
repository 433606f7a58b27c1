package api

import (
	"go.uber.org/fx"
)

var Module = fx.Module("api",
	fx.Provide(NewSystemHandlers),
	fx.Provide(NewObservationHandlers),
	fx.Provide(NewSubscriptionHandlers),
	fx.Provide(NewProductHandlers),
	fx.Provide(NewUsageHandlers),
)
