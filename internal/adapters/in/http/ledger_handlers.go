package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type withdrawRequest struct {
	Amount int64 `json:"amount"`
}

// GetBalance handles GET /api/v1/ledger/:actorType/:actorId/balance.
func (s *Server) GetBalance(ctx echo.Context) error {
	actor, err := pathActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetBalanceQuery(actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	balance, err := s.h.GetBalance.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := newBalanceResponse(balance.Actor, balance.Balance, balance.Revenue)
	response.Entries = balance.Entries
	response.Cached = &balance.Cached
	response.ReconciledAt = &balance.ReconciledAt
	return ctx.JSON(http.StatusOK, response)
}

// ResyncBalance handles POST /api/v1/ledger/:actorType/:actorId/resync.
func (s *Server) ResyncBalance(ctx echo.Context) error {
	actor, err := pathActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewResyncBalanceCommand(actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.ResyncBalance.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := newBalanceResponse(result.Actor, result.Balance, result.Revenue)
	response.Repaired = &result.Repaired
	response.PreviousBalance = result.PreviousBalance
	return ctx.JSON(http.StatusOK, response)
}

// Withdraw handles POST /api/v1/ledger/:actorType/:actorId/withdrawals.
func (s *Server) Withdraw(ctx echo.Context) error {
	actor, err := pathActor(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req withdrawRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewWithdrawCommand(actor, req.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.Withdraw.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, WithdrawalResponse{
		EntryID: result.Entry.ID().String(),
		Amount:  result.Entry.Amount(),
		Balance: result.Balance,
	})
}
