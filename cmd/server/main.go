package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkmatch/inkmatch/internal/api"
	v1 "github.com/inkmatch/inkmatch/internal/api/v1"
	"github.com/inkmatch/inkmatch/internal/cache"
	"github.com/inkmatch/inkmatch/internal/config"
	"github.com/inkmatch/inkmatch/internal/domain/payment"
	"github.com/inkmatch/inkmatch/internal/domain/plan"
	"github.com/inkmatch/inkmatch/internal/domain/proration"
	"github.com/inkmatch/inkmatch/internal/integration/stripe"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/inkmatch/inkmatch/internal/postgres"
	"github.com/inkmatch/inkmatch/internal/repository"
	"github.com/inkmatch/inkmatch/internal/service"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/inkmatch/inkmatch/internal/validator"
	"go.uber.org/fx"
)

// @title InkMatch Billing API
// @version 1.0
// @description Subscription plan catalog, proration quotes and plan changes
// @BasePath /v1

func init() {
	// Billing day counts assume UTC everywhere
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,

			cache.NewInMemoryCache,
			postgres.NewClient,

			repository.NewPlanRepository,
			repository.NewSubscriptionRepository,
			repository.NewPaymentRepository,
			repository.NewPlanChangeRepository,

			provideGateway,
			provideCalculator,
			plan.DefaultFeatureTable,
			types.NewRealClock,

			service.NewServiceParams,
			service.NewPlanService,
			service.NewSubscriptionService,
			service.NewProrationService,
			service.NewPlanChangeService,

			v1.NewPlanHandler,
			v1.NewSubscriptionHandler,
			v1.NewPlanChangeHandler,
			provideRouter,
		),
		fx.Invoke(
			validator.NewValidator,
			startServer,
		),
	)

	app.Run()
}

func provideGateway(cfg *config.Configuration, log *logger.Logger) (payment.Gateway, error) {
	return stripe.NewGateway(cfg, log)
}

func provideCalculator(cfg *config.Configuration) proration.Calculator {
	return proration.NewCalculator(proration.NewDescriber(cfg.Billing.Locale))
}

func provideRouter(
	planHandler *v1.PlanHandler,
	subscriptionHandler *v1.SubscriptionHandler,
	planChangeHandler *v1.PlanChangeHandler,
) *gin.Engine {
	return api.NewRouter(api.Handlers{
		Plan:         planHandler,
		Subscription: subscriptionHandler,
		PlanChange:   planChangeHandler,
	})
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	db postgres.IClient,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return db.Close()
		},
	})
}
