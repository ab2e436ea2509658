package models

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderProgress is the linear display sequence used by order tracking.
// Cancelled sits outside the sequence and renders separately.
var OrderProgress = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
}

func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return OrderStatus(raw), true
	}
	return "", false
}

// ProgressIndex returns the position of the status in OrderProgress, or -1
// for cancelled and for any value outside the known set. Callers must treat
// -1 as "position unknown", never as an error.
func (s OrderStatus) ProgressIndex() int {
	for i, stage := range OrderProgress {
		if stage == s {
			return i
		}
	}
	return -1
}

// CanTransitionTo enforces monotonic forward progress: any forward jump in
// the display sequence is legal, backward moves are not. Cancel is reachable
// from every state except delivered; delivered and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == OrderDelivered || s == OrderCancelled {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	current := s.ProgressIndex()
	target := next.ProgressIndex()
	if current < 0 || target < 0 {
		return false
	}
	return target > current
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch PaymentStatus(raw) {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return PaymentStatus(raw), true
	}
	return "", false
}

// CanTransitionTo allows pending to resolve either way and a failed payment
// to be retried into paid. Paid is terminal.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentPaid || next == PaymentFailed
	case PaymentFailed:
		return next == PaymentPaid
	}
	return false
}
