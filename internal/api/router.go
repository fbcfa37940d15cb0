package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/inkmatch/inkmatch/internal/api/v1"
	"github.com/inkmatch/inkmatch/internal/rest/middleware"
)

type Handlers struct {
	Plan         *v1.PlanHandler
	Subscription *v1.SubscriptionHandler
	PlanChange   *v1.PlanChangeHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	plans := router.Group("/plans")
	{
		plans.POST("", handlers.Plan.CreatePlan)
		plans.GET("", handlers.Plan.GetPlans)
		plans.GET("/:id", handlers.Plan.GetPlan)
		plans.DELETE("/:id", handlers.Plan.DeletePlan)
	}

	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.GET("/:id", handlers.Subscription.GetSubscription)
		subscriptions.GET("/:id/billing-period", handlers.Subscription.GetBillingPeriod)
		subscriptions.GET("/:id/next-billing-date", handlers.Subscription.GetNextBillingDate)
		subscriptions.POST("/:id/change/preview", handlers.PlanChange.PreviewChange)
		subscriptions.POST("/:id/change", handlers.PlanChange.StartChange)
	}

	planChanges := router.Group("/plan-changes")
	{
		planChanges.GET("/:id", handlers.PlanChange.GetChange)
		planChanges.POST("/:id/confirm", handlers.PlanChange.ConfirmChange)
		planChanges.POST("/:id/cancel", handlers.PlanChange.CancelChange)
	}
}
