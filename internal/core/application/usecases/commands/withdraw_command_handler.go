package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/ledger"
)

type WithdrawResult struct {
	Entry   *ledger.Entry
	Balance int64
}

// WithdrawCommandHandler appends a withdrawal when the log-derived balance
// covers it. ledger.ErrInsufficientFunds is returned otherwise.
type WithdrawCommandHandler struct {
	ledger LedgerWriter
	logger *slog.Logger
	now    func() time.Time
}

func NewWithdrawCommandHandler(ledgerWriter LedgerWriter, logger *slog.Logger) WithdrawCommandHandler {
	return WithdrawCommandHandler{
		ledger: ledgerWriter,
		logger: logger.With("component", "withdraw"),
		now:    utcNow,
	}
}

func (h WithdrawCommandHandler) Handle(ctx context.Context, cmd WithdrawCommand) (WithdrawResult, error) {
	if err := cmd.Validate(); err != nil {
		return WithdrawResult{}, err
	}

	entry, account, err := h.ledger.Withdraw(ctx, cmd.Actor(), cmd.Amount(), h.now())
	if err != nil {
		return WithdrawResult{}, err
	}

	h.logger.InfoContext(ctx, "withdrawal recorded",
		"actor", cmd.Actor().String(), "amount", cmd.Amount(), "balance", account.Balance())

	return WithdrawResult{Entry: entry, Balance: account.Balance()}, nil
}
