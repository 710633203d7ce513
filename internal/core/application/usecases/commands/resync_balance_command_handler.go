package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/telemetry"
)

type ResyncBalanceResult struct {
	Actor   ledger.Actor
	Balance int64
	Revenue int64
	// Repaired is set when the cached account disagreed with the log.
	Repaired bool
	// PreviousBalance is the cached balance before the rebuild, if any.
	PreviousBalance *int64
}

// ResyncBalanceCommandHandler overwrites cached accounts with a fresh fold of
// the entry log.
type ResyncBalanceCommandHandler struct {
	ledger  LedgerWriter
	entries ports.LedgerRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewResyncBalanceCommandHandler takes the entry log outside of any unit of
// work only to enumerate actors for HandleAll.
func NewResyncBalanceCommandHandler(
	ledgerWriter LedgerWriter,
	entries ports.LedgerRepository,
	logger *slog.Logger,
) ResyncBalanceCommandHandler {
	return ResyncBalanceCommandHandler{
		ledger:  ledgerWriter,
		entries: entries,
		logger:  logger.With("component", "resync_balance"),
		now:     utcNow,
	}
}

func (h ResyncBalanceCommandHandler) Handle(ctx context.Context, cmd ResyncBalanceCommand) (ResyncBalanceResult, error) {
	if err := cmd.Validate(); err != nil {
		return ResyncBalanceResult{}, err
	}
	return h.resync(ctx, cmd.Actor())
}

// HandleAll resyncs every actor that has entries. It keeps going past
// failures and returns them joined.
func (h ResyncBalanceCommandHandler) HandleAll(ctx context.Context) ([]ResyncBalanceResult, error) {
	actors, err := h.entries.ListActors(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ResyncBalanceResult, 0, len(actors))
	var failures []error
	for _, actor := range actors {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}
		result, err := h.resync(ctx, actor)
		if err != nil {
			failures = append(failures, fmt.Errorf("resync %s: %w", actor, err))
			continue
		}
		results = append(results, result)
	}

	return results, errors.Join(failures...)
}

func (h ResyncBalanceCommandHandler) resync(ctx context.Context, actor ledger.Actor) (ResyncBalanceResult, error) {
	outcome, err := h.ledger.Resync(ctx, actor, h.now())
	if err != nil {
		return ResyncBalanceResult{}, err
	}

	result := ResyncBalanceResult{
		Actor:    actor,
		Balance:  outcome.Account.Balance(),
		Revenue:  outcome.Account.Revenue(),
		Repaired: outcome.Repaired,
	}
	if outcome.Previous != nil {
		previous := outcome.Previous.Balance()
		result.PreviousBalance = &previous
	}

	if outcome.Repaired {
		telemetry.BalanceRepairs.WithLabelValues(actor.Type.String()).Inc()
		h.logger.WarnContext(ctx, "cached balance repaired",
			"actor", actor.String(),
			"cached_balance", outcome.Previous.Balance(),
			"balance", result.Balance,
		)
	}

	return result, nil
}
