package biz

import (
	"go.uber.org/fx"
)

var Module = fx.Module("biz",
	fx.Provide(NewAuthService),
	fx.Provide(NewAccessPolicy),
	fx.Provide(NewProductService),
	fx.Provide(NewSubscriptionService),
	fx.Provide(NewObservationService),
	fx.Provide(NewUsageService),
)
