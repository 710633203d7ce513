package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPickupCommand(t *testing.T, o *order.Order, code string) commands.CompletePickupCommand {
	t.Helper()
	cmd, err := commands.NewCompletePickupCommand(o.ID(), code, o.DistributorID())
	require.NoError(t, err)
	return cmd
}

func TestNewCompletePickupCommand(t *testing.T) {
	_, err := commands.NewCompletePickupCommand(kernel.NewUUID(), "", kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero commands.CompletePickupCommand
	assert.ErrorIs(t, zero.Validate(), commands.ErrCompletePickupCommandIsNotConstructed)
}

func TestCompletePickupCommandHandler_Handle_Success(t *testing.T) {
	f := newFixture()
	distributorCopy := newConfirmedOrder(t, order.Pickup, 7500, 0)
	clientCopy := copyOf(t, distributorCopy)
	book := newMemoryLedger()

	mock.InOrder(
		f.distributorOrders.On("Get", mock.Anything, distributorCopy.DistributorID(), distributorCopy.ID()).
			Return(distributorCopy, nil).Once(),
		f.clientOrders.On("Get", mock.Anything, distributorCopy.ID()).Return(clientCopy, nil).Once(),
		f.clientOrders.On("UpdateFulfillment", mock.Anything, clientCopy).Return(nil).Once(),
		f.clientOrders.On("Archive", mock.Anything, clientCopy).Return(nil).Once(),
		f.distributorOrders.On("Update", mock.Anything, distributorCopy).Return(nil).Once(),
	)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Twice()

	handler := commands.NewCompletePickupCommandHandler(f.stores(), commands.NewLedgerWriter(book), f.notifier, testLogger)
	result, err := handler.Handle(t.Context(), newPickupCommand(t, distributorCopy, distributorCopy.ValidationCode().String()))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, order.Delivered, result.Status)
	assert.NotNil(t, distributorCopy.PickedUpAt())
	assert.Nil(t, distributorCopy.DeliveredAt())
	assert.Equal(t, order.Delivered, clientCopy.Status())

	distributorActor := actorOf(t, ledger.DistributorActor, distributorCopy.DistributorID())
	entries := book.history(distributorActor)
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.Vente, entries[0].Type())
	assert.Equal(t, int64(7500), entries[0].Amount())
	require.NotNil(t, result.Account)
	assert.Equal(t, int64(7500), result.Account.Balance())
	f.couriers.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCompletePickupCommandHandler_Handle_WrongCode(t *testing.T) {
	f := newFixture()
	o := newConfirmedOrder(t, order.Pickup, 7500, 0)
	book := newMemoryLedger()

	f.distributorOrders.On("Get", mock.Anything, mock.Anything, o.ID()).Return(o, nil).Once()

	handler := commands.NewCompletePickupCommandHandler(f.stores(), commands.NewLedgerWriter(book), f.notifier, testLogger)
	result, err := handler.Handle(t.Context(), newPickupCommand(t, o, wrongCode(o.ValidationCode())))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.False(t, result.CodeValid)
	assert.Equal(t, commands.ReasonInvalidCode, result.Reason)
	assert.Equal(t, order.Confirmed, o.Status())
	assert.Empty(t, book.history(actorOf(t, ledger.DistributorActor, o.DistributorID())))
	f.assertExpectations(t)
}

func TestCompletePickupCommandHandler_Handle_Unconfirmed(t *testing.T) {
	f := newFixture()
	o := newOrder(t, order.Pickup, 7500, 0)
	book := newMemoryLedger()

	f.distributorOrders.On("Get", mock.Anything, mock.Anything, o.ID()).Return(o, nil).Once()

	handler := commands.NewCompletePickupCommandHandler(f.stores(), commands.NewLedgerWriter(book), f.notifier, testLogger)
	result, err := handler.Handle(t.Context(), newPickupCommand(t, o, o.ValidationCode().String()))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, commands.ReasonStatusConflict, result.Reason)
	assert.Equal(t, order.New, o.Status())
	assert.Empty(t, book.history(actorOf(t, ledger.DistributorActor, o.DistributorID())))
	f.clientOrders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCompletePickupCommandHandler_Handle_ConfirmsLaggingClientCopy(t *testing.T) {
	f := newFixture()
	clientCopy := newOrder(t, order.Pickup, 7500, 0)
	distributorCopy := copyOf(t, clientCopy)
	require.NoError(t, distributorCopy.Confirm())

	f.distributorOrders.On("Get", mock.Anything, mock.Anything, distributorCopy.ID()).Return(distributorCopy, nil).Once()
	f.clientOrders.On("Get", mock.Anything, distributorCopy.ID()).Return(clientCopy, nil).Once()
	f.clientOrders.On("UpdateFulfillment", mock.Anything, clientCopy).Return(nil).Once()
	f.clientOrders.On("Archive", mock.Anything, clientCopy).Return(nil).Once()
	f.distributorOrders.On("Update", mock.Anything, distributorCopy).Return(nil).Once()
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Twice()

	handler := commands.NewCompletePickupCommandHandler(f.stores(), commands.NewLedgerWriter(newMemoryLedger()), f.notifier, testLogger)
	result, err := handler.Handle(t.Context(), newPickupCommand(t, distributorCopy, distributorCopy.ValidationCode().String()))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, order.Delivered, clientCopy.Status())
	assert.NotNil(t, clientCopy.PickedUpAt())
	f.assertExpectations(t)
}

func TestCompletePickupCommandHandler_Handle_AlreadyPickedUp(t *testing.T) {
	f := newFixture()
	o := newConfirmedOrder(t, order.Pickup, 7500, 0)
	require.NoError(t, o.Deliver(o.CreatedAt()))

	f.distributorOrders.On("Get", mock.Anything, mock.Anything, o.ID()).Return(o, nil).Once()

	handler := commands.NewCompletePickupCommandHandler(f.stores(), commands.NewLedgerWriter(newMemoryLedger()), f.notifier, testLogger)
	result, err := handler.Handle(t.Context(), newPickupCommand(t, o, o.ValidationCode().String()))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.AlreadyProcessed)
	f.clientOrders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCompletePickupCommandHandler_Handle_DeliveryOrderIsRejected(t *testing.T) {
	f := newFixture()
	o := newOrder(t, order.Delivery, 5000, 1000)

	f.distributorOrders.On("Get", mock.Anything, mock.Anything, o.ID()).Return(o, nil).Once()

	handler := commands.NewCompletePickupCommandHandler(f.stores(), commands.NewLedgerWriter(newMemoryLedger()), f.notifier, testLogger)
	_, err := handler.Handle(t.Context(), newPickupCommand(t, o, o.ValidationCode().String()))

	require.ErrorIs(t, err, commands.ErrFulfillmentModeMismatch)
	f.assertExpectations(t)
}

func TestCompletePickupCommandHandler_Handle_ClientWriteFailure(t *testing.T) {
	f := newFixture()
	o := newConfirmedOrder(t, order.Pickup, 7500, 0)
	clientCopy := copyOf(t, o)
	book := newMemoryLedger()

	f.distributorOrders.On("Get", mock.Anything, mock.Anything, o.ID()).Return(o, nil).Once()
	f.clientOrders.On("Get", mock.Anything, o.ID()).Return(clientCopy, nil).Once()
	f.clientOrders.On("UpdateFulfillment", mock.Anything, clientCopy).Return(nil).Once()
	f.clientOrders.On("Archive", mock.Anything, clientCopy).Return(errors.New("connection refused")).Once()

	handler := commands.NewCompletePickupCommandHandler(f.stores(), commands.NewLedgerWriter(book), f.notifier, testLogger)
	_, err := handler.Handle(t.Context(), newPickupCommand(t, o, o.ValidationCode().String()))

	var partial *commands.PartialWriteError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, commands.ProjectionClient, partial.Projection)
	// the distributor projection still reads as open, so a retry completes the pickup
	f.distributorOrders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Len(t, book.history(actorOf(t, ledger.DistributorActor, o.DistributorID())), 1)
	f.assertExpectations(t)
}
