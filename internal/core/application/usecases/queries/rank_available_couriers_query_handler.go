package queries

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/telemetry"
)

// RankAvailableCouriersQueryHandler ranks available couriers around the
// distributor's shop. Live positions come from the locator; couriers it does
// not know, or all of them when it fails, are ranked on their stored location.
type RankAvailableCouriersQueryHandler struct {
	distributors ports.DistributorRepository
	couriers     ports.CourierRepository
	locator      ports.CourierLocator
	engine       services.RankingEngine
	logger       *slog.Logger
	now          func() time.Time
}

func NewRankAvailableCouriersQueryHandler(
	distributors ports.DistributorRepository,
	couriers ports.CourierRepository,
	locator ports.CourierLocator,
	engine services.RankingEngine,
	logger *slog.Logger,
) RankAvailableCouriersQueryHandler {
	return RankAvailableCouriersQueryHandler{
		distributors: distributors,
		couriers:     couriers,
		locator:      locator,
		engine:       engine,
		logger:       logger.With("component", "rank_available_couriers"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (h RankAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query RankAvailableCouriersQuery,
) (ranking []RankedCourierResponse, err error) {
	if err = query.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "queries.RankAvailableCouriers")
	defer func() { telemetry.EndSpan(span, err) }()

	d, err := h.distributors.Get(ctx, query.DistributorID())
	if err != nil {
		return nil, err
	}

	available, err := h.couriers.GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(available))
	for _, c := range available {
		ids = append(ids, c.ID())
	}

	live, err := h.locator.Positions(ctx, ids)
	if err != nil {
		h.logger.WarnContext(ctx, "live positions unavailable, using stored locations", "error", err)
		live = nil
	}

	candidates := make([]services.Candidate, 0, len(available))
	for _, c := range available {
		position, ok := live[c.ID()]
		if !ok {
			position = c.Location()
		}
		candidates = append(candidates, services.Candidate{Courier: c, Position: position})
	}

	ranked, err := h.engine.Rank(d.Location(), candidates, h.now())
	if err != nil {
		return nil, err
	}

	if limit := query.Limit(); limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ranking = make([]RankedCourierResponse, 0, len(ranked))
	for _, r := range ranked {
		position, isLive := live[r.Courier.ID()]
		if !isLive {
			position = r.Courier.Location()
		}
		ranking = append(ranking, RankedCourierResponse{
			CourierID:        r.Courier.ID(),
			Name:             r.Courier.Name(),
			Position:         position,
			DistanceMeters:   r.DistanceMeters,
			BaseScore:        r.BaseScore(),
			DistanceScore:    r.DistanceScore,
			TotalScore:       r.TotalScore(),
			ActiveDeliveries: r.Courier.Stats().Active,
			LivePosition:     isLive,
		})
	}

	return ranking, nil
}
