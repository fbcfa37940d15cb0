package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkmatch/inkmatch/internal/api/dto"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/inkmatch/inkmatch/internal/service"
)

type PlanChangeHandler struct {
	service service.PlanChangeService
	log     *logger.Logger
}

func NewPlanChangeHandler(service service.PlanChangeService, log *logger.Logger) *PlanChangeHandler {
	return &PlanChangeHandler{
		service: service,
		log:     log,
	}
}

// @Summary Preview a plan change
// @Description Quote the immediate charge or credit of switching plans
// today, without persisting anything
// @Tags PlanChanges
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.PreviewPlanChangeRequest true "Target plan"
// @Success 200 {object} dto.PlanChangePreviewResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /subscriptions/{id}/change/preview [post]
func (h *PlanChangeHandler) PreviewChange(c *gin.Context) {
	var req dto.PreviewPlanChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.PreviewChange(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Start a plan change
// @Description Open a plan-change attempt in the quoted state
// @Tags PlanChanges
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.CreatePlanChangeRequest true "Target plan"
// @Success 201 {object} dto.PlanChangeResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /subscriptions/{id}/change [post]
func (h *PlanChangeHandler) StartChange(c *gin.Context) {
	var req dto.CreatePlanChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.StartChange(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a plan change
// @Tags PlanChanges
// @Produce json
// @Param id path string true "Plan change ID"
// @Success 200 {object} dto.PlanChangeResponse
// @Router /plan-changes/{id} [get]
func (h *PlanChangeHandler) GetChange(c *gin.Context) {
	resp, err := h.service.GetChange(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Confirm a plan change
// @Description Recompute the quote and finalize the change: upgrades
// collect payment, downgrades require the acknowledgment flag
// @Tags PlanChanges
// @Accept json
// @Produce json
// @Param id path string true "Plan change ID"
// @Param request body dto.ConfirmPlanChangeRequest true "Confirmation"
// @Success 200 {object} dto.PlanChangeResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 402 {object} middleware.ErrorResponse
// @Router /plan-changes/{id}/confirm [post]
func (h *PlanChangeHandler) ConfirmChange(c *gin.Context) {
	var req dto.ConfirmPlanChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ConfirmChange(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel a plan change
// @Description Close an open attempt with no side effects
// @Tags PlanChanges
// @Produce json
// @Param id path string true "Plan change ID"
// @Success 200 {object} dto.PlanChangeResponse
// @Router /plan-changes/{id}/cancel [post]
func (h *PlanChangeHandler) CancelChange(c *gin.Context) {
	resp, err := h.service.CancelChange(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
