package refunds

import (
	"errors"

	"pasarin/models"
)

var (
	ErrOrderCancelled = errors.New("cancelled orders cannot be refunded")
	ErrRefundInFlight = errors.New("a refund for this order is already in progress")
)

// CanRequestRefund decides whether a new refund may be opened for an order.
// Cancelled orders are settled by the stock-restoring cancellation itself,
// and at most one refund may be in flight per order; a rejected or completed
// refund does not block a new request.
func CanRequestRefund(orderStatus string, activeRefunds int64) error {
	if orderStatus == models.OrderCancelled {
		return ErrOrderCancelled
	}
	if activeRefunds > 0 {
		return ErrRefundInFlight
	}
	return nil
}
