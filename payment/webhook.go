package payment

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/globals"
	"pasarin/models"
	"pasarin/mq"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrUnknownStatus = errors.New("unrecognized payment status")

// ApplyEvent applies a gateway status to an order in place and reports
// whether anything changed. Re-delivery of the same status is a no-op, which
// keeps the webhook idempotent.
//
//   - paid/success: payment becomes paid; order status advances to paid only
//     from pending, never downgrading a further-progressed order
//   - expired: payment expired, order force-cancelled
//   - failed: payment failed, order status untouched
//
// A payment reference is persisted on every recognized status.
func ApplyEvent(o *models.Order, status, reference string, now time.Time) (bool, error) {
	changed := false

	switch status {
	case "paid", "success":
		if o.PaymentStatus != models.PaymentPaid {
			o.PaymentStatus = models.PaymentPaid
			o.PaidAt = &now
			changed = true
		}
		if o.Status == models.OrderPending {
			o.Status = models.OrderPaid
			changed = true
		}
	case "expired":
		if o.PaymentStatus != models.PaymentExpired {
			o.PaymentStatus = models.PaymentExpired
			o.PaymentExpiredAt = &now
			changed = true
		}
		if o.Status != models.OrderCancelled {
			o.Status = models.OrderCancelled
			changed = true
		}
	case "failed":
		if o.PaymentStatus != models.PaymentFailed {
			o.PaymentStatus = models.PaymentFailed
			changed = true
		}
	default:
		return false, ErrUnknownStatus
	}

	if reference != "" && o.PaymentReference != reference {
		o.PaymentReference = reference
		changed = true
	}
	if changed {
		o.UpdatedAt = now
	}
	return changed, nil
}

// Webhook receives payment status callbacks from the gateway, keyed by the
// human-readable order number (the only identifier the gateway knows).
func Webhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if globals.WebhookToken != "" && r.Header.Get("X-Webhook-Token") != globals.WebhookToken {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid webhook token")
		return
	}

	var event struct {
		OrderNumber      string `json:"order_number"`
		Status           string `json:"status"`
		PaymentReference string `json:"payment_reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil || event.OrderNumber == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderNumber": event.OrderNumber}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	changed, err := ApplyEvent(&order, event.Status, event.PaymentReference, time.Now())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if changed {
		update := bson.M{
			"status":        order.Status,
			"paymentStatus": order.PaymentStatus,
			"updatedAt":     order.UpdatedAt,
		}
		if order.PaymentReference != "" {
			update["paymentReference"] = order.PaymentReference
		}
		if order.PaidAt != nil {
			update["paidAt"] = order.PaidAt
		}
		if order.PaymentExpiredAt != nil {
			update["paymentExpiredAt"] = order.PaymentExpiredAt
		}

		if _, err := db.OrdersCollection.UpdateOne(ctx,
			bson.M{"orderNumber": event.OrderNumber},
			bson.M{"$set": update},
		); err != nil {
			log.Println("Webhook UpdateOne error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record payment status")
			return
		}

		notifyBuyer(ctx, order, event.Status)
	}

	utils.RespondWithMessage(w, http.StatusOK, "Payment status recorded", nil)
}

func notifyBuyer(ctx context.Context, order models.Order, status string) {
	var title string
	switch status {
	case "paid", "success":
		title = "Payment received for " + order.OrderNumber
	case "expired":
		title = "Payment window expired for " + order.OrderNumber
	case "failed":
		title = "Payment failed for " + order.OrderNumber
	}

	if err := mq.Notify(ctx, models.Notification{
		UserID:     order.UserID,
		Type:       "payment",
		Title:      title,
		EntityID:   order.OrderID,
		EntityType: "order",
	}); err != nil {
		log.Println("webhook notify error:", err)
	}
}
