package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/inkmatch/inkmatch/internal/service"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	log     *logger.Logger
}

func NewSubscriptionHandler(service service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get a subscription
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	resp, err := h.service.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the current billing period
// @Description Inclusive date range the current payment covers, inferred
// for subscriptions without explicit period tracking
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.BillingPeriodResponse
// @Router /subscriptions/{id}/billing-period [get]
func (h *SubscriptionHandler) GetBillingPeriod(c *gin.Context) {
	resp, err := h.service.GetBillingPeriod(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the next billing date
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.NextBillingDateResponse
// @Router /subscriptions/{id}/next-billing-date [get]
func (h *SubscriptionHandler) GetNextBillingDate(c *gin.Context) {
	resp, err := h.service.GetNextBillingDate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
