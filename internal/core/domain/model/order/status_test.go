package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status order.Status
		want   string
	}{
		{order.New, "new"},
		{order.Confirmed, "confirmed"},
		{order.InDelivery, "in_delivery"},
		{order.Delivered, "delivered"},
		{order.Cancelled, "cancelled"},
		{order.Unknown, "unknown"},
		{order.Status(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.InDelivery.Validate())
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	for _, s := range []order.Status{order.New, order.Confirmed, order.InDelivery, order.Delivered, order.Cancelled} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(order.Status) (order.Status, error)

	confirm := func(s order.Status) (order.Status, error) { return s.Confirm() }
	assign := func(s order.Status) (order.Status, error) { return s.Assign() }
	deliverHome := func(s order.Status) (order.Status, error) { return s.Deliver(order.Delivery) }
	deliverPickup := func(s order.Status) (order.Status, error) { return s.Deliver(order.Pickup) }
	cancel := func(s order.Status) (order.Status, error) { return s.Cancel() }

	tests := []struct {
		name    string
		from    order.Status
		apply   transition
		want    order.Status
		wantErr bool
	}{
		{name: "confirm new", from: order.New, apply: confirm, want: order.Confirmed},
		{name: "confirm confirmed", from: order.Confirmed, apply: confirm, want: order.Confirmed},
		{name: "confirm in delivery", from: order.InDelivery, apply: confirm, wantErr: true},

		{name: "assign new", from: order.New, apply: assign, wantErr: true},
		{name: "assign confirmed", from: order.Confirmed, apply: assign, want: order.InDelivery},
		{name: "take over in delivery", from: order.InDelivery, apply: assign, want: order.InDelivery},
		{name: "assign unknown", from: order.Unknown, apply: assign, wantErr: true},

		{name: "deliver home from in delivery", from: order.InDelivery, apply: deliverHome, want: order.Delivered},
		{name: "deliver home from confirmed", from: order.Confirmed, apply: deliverHome, wantErr: true},
		{name: "pickup from confirmed", from: order.Confirmed, apply: deliverPickup, want: order.Delivered},
		{name: "pickup from new", from: order.New, apply: deliverPickup, wantErr: true},
		{name: "pickup from in delivery", from: order.InDelivery, apply: deliverPickup, wantErr: true},

		{name: "cancel new", from: order.New, apply: cancel, want: order.Cancelled},
		{name: "cancel confirmed", from: order.Confirmed, apply: cancel, want: order.Cancelled},
		{name: "cancel in delivery", from: order.InDelivery, apply: cancel, wantErr: true},

		{name: "terminal delivered ignores cancel", from: order.Delivered, apply: cancel, want: order.Delivered},
		{name: "terminal cancelled ignores assign", from: order.Cancelled, apply: assign, want: order.Cancelled},
		{name: "terminal cancelled ignores deliver", from: order.Cancelled, apply: deliverHome, want: order.Cancelled},
		{name: "terminal delivered ignores confirm", from: order.Delivered, apply: confirm, want: order.Delivered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)
			if tt.wantErr {
				require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)

				var transitionErr *order.TransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tt.from, transitionErr.From)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.New.IsTerminal())
	assert.False(t, order.InDelivery.IsTerminal())
}

func TestFulfillmentMode(t *testing.T) {
	mode, err := order.ParseFulfillmentMode("pickup")
	require.NoError(t, err)
	assert.Equal(t, order.Pickup, mode)
	assert.Equal(t, "delivery", order.Delivery.String())

	_, err = order.ParseFulfillmentMode("drone")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, order.UnknownMode.Validate())
}
