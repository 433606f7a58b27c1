package server

import (
	"github.com/gin-contrib/cors"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/server/api"
	"github.com/SyedFrazAli/geoscope/internal/server/biz"
	"github.com/SyedFrazAli/geoscope/internal/server/middleware"
)

type Handlers struct {
	fx.In

	System        *api.SystemHandlers
	Observations  *api.ObservationHandlers
	Subscriptions *api.SubscriptionHandlers
	Products      *api.ProductHandlers
	Usage         *api.UsageHandlers
}

type Services struct {
	fx.In

	AuthService *biz.AuthService
}

func SetupRoutes(server *Server, handlers Handlers, services Services) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithTrace(server.Config.Trace))

	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	publicGroup := server.Group("", middleware.WithTimeout(server.Config.RequestTimeout))
	{
		// Health check endpoint - no authentication required
		publicGroup.GET("/health", handlers.System.Health)

		// Catalog and entitlement administration. The identity tier fronts
		// these in deployment; the core keeps them open like the data writes.
		publicGroup.GET("/api/products", handlers.Products.List)
		publicGroup.GET("/api/subscriptions", handlers.Subscriptions.List)
		publicGroup.POST("/api/subscriptions", handlers.Subscriptions.Grant)
		publicGroup.DELETE("/api/subscriptions", handlers.Subscriptions.Revoke)

		publicGroup.GET("/api/usage-stats", handlers.Usage.Stats)

		// Observation writes carry no entitlement check in the current
		// product design.
		publicGroup.POST("/api/observations", handlers.Observations.Create)
		publicGroup.PUT("/api/observations/:id", handlers.Observations.Update)
		publicGroup.DELETE("/api/observations/:id", handlers.Observations.Delete)

		// Bulk retrieval with per-id failure metadata.
		publicGroup.GET("/api/v1/bulk/insights", handlers.Observations.GetBulk)
	}

	// Observation reads are subscription-gated and need a caller identity.
	authGroup := server.Group("",
		middleware.WithTimeout(server.Config.RequestTimeout),
		middleware.WithJWTAuth(services.AuthService),
	)
	{
		authGroup.GET("/api/observations", handlers.Observations.List)
		authGroup.GET("/api/observations/:id", handlers.Observations.Get)
	}
}
