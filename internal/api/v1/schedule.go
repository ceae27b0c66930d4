package v1

import (
	"net/http"

	"github.com/flexprice/billing-schedule/internal/api/dto"
	ierr "github.com/flexprice/billing-schedule/internal/errors"
	"github.com/flexprice/billing-schedule/internal/logger"
	"github.com/flexprice/billing-schedule/internal/service"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	service service.ScheduleService
	logger  *logger.Logger
}

func NewScheduleHandler(service service.ScheduleService, logger *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		logger:  logger,
	}
}

// @Summary Preview a billing schedule
// @Description Compute the billing periods, prorated quantities and amounts for a subscription
// @Tags Schedules
// @Accept json
// @Produce json
// @Param schedule body dto.PreviewScheduleRequest true "Schedule parameters"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /schedules/preview [post]
func (h *ScheduleHandler) PreviewSchedule(c *gin.Context) {
	var req dto.PreviewScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.PreviewSchedule(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
