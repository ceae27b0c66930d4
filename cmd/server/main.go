package main

import (
	"context"
	"net/http"
	"time"

	"github.com/flexprice/billing-schedule/internal/api"
	v1 "github.com/flexprice/billing-schedule/internal/api/v1"
	"github.com/flexprice/billing-schedule/internal/cache"
	"github.com/flexprice/billing-schedule/internal/config"
	"github.com/flexprice/billing-schedule/internal/domain/schedule"
	"github.com/flexprice/billing-schedule/internal/logger"
	"github.com/flexprice/billing-schedule/internal/service"
	"github.com/flexprice/billing-schedule/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Billing Schedule API
// @version 1.0
// @description Billing schedule computation service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Domain
			schedule.NewGenerator,

			// Services
			service.NewScheduleService,

			// Handlers
			v1.NewScheduleHandler,
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(scheduleHandler *v1.ScheduleHandler) api.Handlers {
	return api.Handlers{
		Schedule: scheduleHandler,
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			log.Infof("server started at %s", cfg.Server.Address)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return server.Shutdown(ctx)
		},
	})
}
