package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRefreshCourierScoresCommandIsNotConstructed = errors.New(
	"RefreshCourierScoresCommand must be created via a NewRefreshCourierScoresCommand constructor",
)

// RefreshCourierScoresCommand recomputes stored courier scores, for one
// courier or for all of them.
type RefreshCourierScoresCommand struct {
	courierID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewRefreshAllCourierScoresCommand() RefreshCourierScoresCommand {
	return RefreshCourierScoresCommand{guard: guard.NewConstructorGuard()}
}

func NewRefreshCourierScoresCommand(courierID kernel.UUID) (RefreshCourierScoresCommand, error) {
	if err := requireID("courier id", courierID); err != nil {
		return RefreshCourierScoresCommand{}, err
	}
	return RefreshCourierScoresCommand{courierID: &courierID, guard: guard.NewConstructorGuard()}, nil
}

func (c RefreshCourierScoresCommand) Validate() error {
	return c.guard.Validate(ErrRefreshCourierScoresCommandIsNotConstructed)
}

// CourierID is nil when every courier is refreshed.
func (c RefreshCourierScoresCommand) CourierID() *kernel.UUID {
	if c.courierID == nil {
		return nil
	}
	id := *c.courierID
	return &id
}
