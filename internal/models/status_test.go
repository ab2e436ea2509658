package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, OrderConfirmed, status)

	_, ok = ParseOrderStatus("shiped")
	assert.False(t, ok)
}

func TestProgressIndex(t *testing.T) {
	assert.Equal(t, 0, OrderPending.ProgressIndex())
	assert.Equal(t, 3, OrderShipped.ProgressIndex())
	assert.Equal(t, 4, OrderDelivered.ProgressIndex())

	// cancelled and unknown values sit outside the linear sequence;
	// tracking renders them as "position unknown", never a crash
	assert.Equal(t, -1, OrderCancelled.ProgressIndex())
	assert.Equal(t, -1, OrderStatus("shiped").ProgressIndex())
	assert.Equal(t, -1, OrderStatus("").ProgressIndex())
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderShipped, true}, // forward jumps are legal
		{OrderConfirmed, OrderProcessing, true},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderProcessing, false}, // no backward moves
		{OrderConfirmed, OrderPending, false},
		{OrderConfirmed, OrderConfirmed, false},
		{OrderPending, OrderCancelled, true},
		{OrderShipped, OrderCancelled, true},
		{OrderDelivered, OrderCancelled, false}, // delivered is terminal
		{OrderDelivered, OrderProcessing, false},
		{OrderCancelled, OrderPending, false}, // cancelled is terminal
		{OrderPending, OrderStatus("shiped"), false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentPending.CanTransitionTo(PaymentPaid))
	assert.True(t, PaymentPending.CanTransitionTo(PaymentFailed))
	assert.True(t, PaymentFailed.CanTransitionTo(PaymentPaid))
	assert.False(t, PaymentPaid.CanTransitionTo(PaymentPending))
	assert.False(t, PaymentPaid.CanTransitionTo(PaymentFailed))
	assert.False(t, PaymentFailed.CanTransitionTo(PaymentPending))
}
