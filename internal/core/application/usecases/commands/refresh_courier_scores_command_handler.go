package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

type RefreshCourierScoresResult struct {
	Refreshed int
	Failed    int
}

// RefreshCourierScoresCommandHandler stores a fresh RankingEngine score on
// each courier. Failures on one courier do not stop the others.
type RefreshCourierScoresCommandHandler struct {
	couriers ports.CourierRepository
	engine   services.RankingEngine
	logger   *slog.Logger
	now      func() time.Time
}

func NewRefreshCourierScoresCommandHandler(
	couriers ports.CourierRepository,
	engine services.RankingEngine,
	logger *slog.Logger,
) RefreshCourierScoresCommandHandler {
	return RefreshCourierScoresCommandHandler{
		couriers: couriers,
		engine:   engine,
		logger:   logger.With("component", "refresh_courier_scores"),
		now:      utcNow,
	}
}

func (h RefreshCourierScoresCommandHandler) Handle(
	ctx context.Context,
	cmd RefreshCourierScoresCommand,
) (RefreshCourierScoresResult, error) {
	if err := cmd.Validate(); err != nil {
		return RefreshCourierScoresResult{}, err
	}

	var targets []*courier.Courier
	if id := cmd.CourierID(); id != nil {
		c, err := h.couriers.Get(ctx, *id)
		if err != nil {
			return RefreshCourierScoresResult{}, err
		}
		targets = []*courier.Courier{c}
	} else {
		all, err := h.couriers.GetAll(ctx)
		if err != nil {
			return RefreshCourierScoresResult{}, err
		}
		targets = all
	}

	now := h.now()
	var result RefreshCourierScoresResult
	var failures []error
	for _, c := range targets {
		if err := h.refresh(ctx, c, now); err != nil {
			result.Failed++
			failures = append(failures, fmt.Errorf("courier %s: %w", c.ID(), err))
			continue
		}
		result.Refreshed++
	}

	if result.Failed > 0 {
		h.logger.WarnContext(ctx, "some courier scores were not refreshed",
			"refreshed", result.Refreshed, "failed", result.Failed)
	}

	return result, errors.Join(failures...)
}

func (h RefreshCourierScoresCommandHandler) refresh(ctx context.Context, c *courier.Courier, at time.Time) error {
	score, err := h.engine.Score(c, at)
	if err != nil {
		return err
	}
	if err = c.SetScore(score); err != nil {
		return err
	}
	return h.couriers.Update(ctx, c)
}
