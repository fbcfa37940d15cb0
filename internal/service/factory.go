package service

import (
	"github.com/inkmatch/inkmatch/internal/cache"
	"github.com/inkmatch/inkmatch/internal/config"
	"github.com/inkmatch/inkmatch/internal/domain/payment"
	"github.com/inkmatch/inkmatch/internal/domain/plan"
	"github.com/inkmatch/inkmatch/internal/domain/planchange"
	"github.com/inkmatch/inkmatch/internal/domain/proration"
	"github.com/inkmatch/inkmatch/internal/domain/subscription"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/inkmatch/inkmatch/internal/postgres"
	"github.com/inkmatch/inkmatch/internal/types"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache

	// Repositories
	PlanRepo       plan.Repository
	SubRepo        subscription.Repository
	PaymentRepo    payment.Repository
	PlanChangeRepo planchange.Repository

	// Collaborators
	Gateway      payment.Gateway
	Calculator   proration.Calculator
	FeatureTable *plan.FeatureTable
	Clock        types.Clock
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	planRepo plan.Repository,
	subRepo subscription.Repository,
	paymentRepo payment.Repository,
	planChangeRepo planchange.Repository,
	gateway payment.Gateway,
	calculator proration.Calculator,
	featureTable *plan.FeatureTable,
	clock types.Clock,
) ServiceParams {
	return ServiceParams{
		Logger:         logger,
		Config:         config,
		DB:             db,
		Cache:          cache,
		PlanRepo:       planRepo,
		SubRepo:        subRepo,
		PaymentRepo:    paymentRepo,
		PlanChangeRepo: planChangeRepo,
		Gateway:        gateway,
		Calculator:     calculator,
		FeatureTable:   featureTable,
		Clock:          clock,
	}
}
