package refunds

import (
	"testing"

	"pasarin/models"

	"github.com/stretchr/testify/assert"
)

func TestCanRequestRefund(t *testing.T) {
	cases := []struct {
		name          string
		orderStatus   string
		activeRefunds int64
		wantErr       error
	}{
		{"pending order, no refunds", models.OrderPending, 0, nil},
		{"delivered order, no refunds", models.OrderDelivered, 0, nil},
		{"second request while first is pending", models.OrderDelivered, 1, ErrRefundInFlight},
		{"cancelled order", models.OrderCancelled, 0, ErrOrderCancelled},
		{"rejected refund does not block a new one", models.OrderShipped, 0, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanRequestRefund(tc.orderStatus, tc.activeRefunds)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
