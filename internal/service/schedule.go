package service

import (
	"context"
	"fmt"

	"github.com/flexprice/billing-schedule/internal/api/dto"
	"github.com/flexprice/billing-schedule/internal/cache"
	"github.com/flexprice/billing-schedule/internal/domain/schedule"
	ierr "github.com/flexprice/billing-schedule/internal/errors"
	"github.com/flexprice/billing-schedule/internal/logger"
)

// ScheduleService exposes billing schedule generation to the API layer.
type ScheduleService interface {
	// PreviewSchedule computes the full billing schedule for the requested
	// parameters. It does not persist anything.
	PreviewSchedule(ctx context.Context, req dto.PreviewScheduleRequest) (*dto.ScheduleResponse, error)
}

type scheduleService struct {
	generator schedule.Generator
	cache     cache.Cache
	logger    *logger.Logger
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(generator schedule.Generator, c cache.Cache, log *logger.Logger) ScheduleService {
	return &scheduleService{
		generator: generator,
		cache:     c,
		logger:    log,
	}
}

func (s *scheduleService) PreviewSchedule(ctx context.Context, req dto.PreviewScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params, err := req.ToScheduleParams()
	if err != nil {
		return nil, err
	}

	// Generation is deterministic, so computed schedules are safe to memoize.
	cacheKey := scheduleCacheKey(params)
	if cached, found := s.cache.Get(ctx, cacheKey); found {
		if resp, ok := cached.(*dto.ScheduleResponse); ok {
			return resp, nil
		}
	}

	s.logger.Infow("generating billing schedule",
		"start_date", params.StartDate.Format("2006-01-02"),
		"end_date", params.EndDate.Format("2006-01-02"),
		"billing_cycle", params.BillingCycle.String(),
		"anchor_day", params.AnchorDay,
	)

	result, err := s.generator.Generate(ctx, params)
	if err != nil {
		if ierr.IsValidation(err) {
			return nil, err
		}
		s.logger.Errorw("schedule generation failed",
			"error", err,
			"start_date", params.StartDate.Format("2006-01-02"),
			"end_date", params.EndDate.Format("2006-01-02"),
		)
		return nil, ierr.WithError(err).
			WithHint("Failed to generate billing schedule").
			Mark(ierr.ErrSystem)
	}

	// Period summaries are a log-side observer; the structured response is
	// produced regardless of the log level.
	for _, period := range result.Periods {
		s.logger.Debugw("billing period",
			"schedule_id", result.ID,
			"billing_start", period.StartDate.Format("2006-01-02"),
			"billing_end", period.EndDate.Format("2006-01-02"),
			"units_billed", period.UnitsBilled.String(),
			"amount", period.Amount.String(),
			"prorated", period.Prorated,
		)
	}

	s.logger.Infow("billing schedule generated",
		"schedule_id", result.ID,
		"periods", len(result.Periods),
		"total_units", result.TotalUnits.String(),
		"total_amount", result.TotalAmount.String(),
		"cap_reached", result.CapReached,
	)

	resp := dto.NewScheduleResponse(result)
	s.cache.Set(ctx, cacheKey, resp, 0)
	return resp, nil
}

func scheduleCacheKey(params schedule.ScheduleParams) string {
	return fmt.Sprintf("%s%s:%s:%d:%s:%s:%s:%s",
		cache.PrefixSchedule,
		params.StartDate.Format("2006-01-02"),
		params.EndDate.Format("2006-01-02"),
		params.AnchorDay,
		params.BillingCycle,
		params.PricePerMonth.String(),
		params.QuantityPerMonth.String(),
		params.MaxQuantity.String(),
	)
}
