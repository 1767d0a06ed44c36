package payment

import (
	"testing"
	"time"

	"pasarin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingOrder() models.Order {
	return models.Order{
		OrderID:       "o1",
		OrderNumber:   "ORD-TEST-1",
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentUnpaid,
	}
}

func TestApplyEventPaid(t *testing.T) {
	o := pendingOrder()
	now := time.Now()

	changed, err := ApplyEvent(&o, "paid", "ref-1", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, models.OrderPaid, o.Status)
	assert.Equal(t, "ref-1", o.PaymentReference)
	require.NotNil(t, o.PaidAt)
	assert.Equal(t, now, *o.PaidAt)
}

func TestApplyEventSuccessAlias(t *testing.T) {
	o := pendingOrder()

	changed, err := ApplyEvent(&o, "success", "", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, models.OrderPaid, o.Status)
}

func TestApplyEventPaidDoesNotDowngradeShipped(t *testing.T) {
	o := pendingOrder()
	o.Status = models.OrderShipped
	o.PaymentStatus = models.PaymentPaid

	changed, err := ApplyEvent(&o, "paid", "", time.Now())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.OrderShipped, o.Status)
}

func TestApplyEventExpiredCancels(t *testing.T) {
	o := pendingOrder()

	changed, err := ApplyEvent(&o, "expired", "", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.PaymentExpired, o.PaymentStatus)
	assert.Equal(t, models.OrderCancelled, o.Status)
	assert.NotNil(t, o.PaymentExpiredAt)
}

func TestApplyEventFailedLeavesOrderStatus(t *testing.T) {
	o := pendingOrder()

	changed, err := ApplyEvent(&o, "failed", "", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.PaymentFailed, o.PaymentStatus)
	assert.Equal(t, models.OrderPending, o.Status)
}

func TestApplyEventIdempotentRedelivery(t *testing.T) {
	o := pendingOrder()
	now := time.Now()

	changed, err := ApplyEvent(&o, "paid", "ref-1", now)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = ApplyEvent(&o, "paid", "ref-1", now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestApplyEventUnknownStatus(t *testing.T) {
	o := pendingOrder()

	_, err := ApplyEvent(&o, "refunded-maybe", "", time.Now())
	require.ErrorIs(t, err, ErrUnknownStatus)
	// order untouched
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, models.PaymentUnpaid, o.PaymentStatus)
}
