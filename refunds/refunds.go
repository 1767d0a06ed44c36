package refunds

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/mq"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RequestRefund opens a refund for one of the caller's orders. A cancelled
// order cannot be refunded, and only one refund may be in flight per order.
func RequestRefund(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("orderid")

	var input struct {
		Reason  string `json:"reason"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Reason == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "A refund reason is required")
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID, "userId": userID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	count, err := db.RefundsCollection.CountDocuments(ctx, bson.M{
		"orderId": orderID,
		"userId":  userID,
		"status":  bson.M{"$in": models.ActiveRefundStatuses},
	})
	if err != nil {
		log.Println("RequestRefund CountDocuments error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing refunds")
		return
	}

	if err := CanRequestRefund(order.Status, count); err != nil {
		if errors.Is(err, ErrOrderCancelled) {
			utils.RespondWithError(w, http.StatusBadRequest, "Cancelled orders cannot be refunded")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, "A refund for this order is already in progress")
		return
	}

	now := time.Now()
	refund := models.RefundRequest{
		RefundID:  utils.GetUUID(),
		OrderID:   orderID,
		UserID:    userID,
		Reason:    input.Reason,
		Details:   input.Details,
		Status:    models.RefundPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.RefundsCollection.InsertOne(ctx, refund); err != nil {
		log.Println("RequestRefund InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create refund request")
		return
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"refundStatus": models.RefundRequested, "updatedAt": now}},
	); err != nil {
		log.Println("RequestRefund order update error:", err)
	}

	notifySeller(ctx, order, "refund-requested", "Refund requested for "+order.OrderNumber)

	utils.RespondWithData(w, http.StatusCreated, refund)
}

// ListRefunds returns the caller's refund requests, newest first.
func ListRefunds(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	refunds, err := utils.FindAndDecode[models.RefundRequest](ctx, db.RefundsCollection, bson.M{"userId": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve refunds")
		return
	}

	utils.RespondWithData(w, http.StatusOK, refunds)
}

// GetRefund returns one of the caller's refund requests.
func GetRefund(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var refund models.RefundRequest
	err := db.RefundsCollection.FindOne(ctx, bson.M{"refundId": ps.ByName("refundid"), "userId": userID}).Decode(&refund)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Refund request not found")
		return
	}

	utils.RespondWithData(w, http.StatusOK, refund)
}

func notifySeller(ctx context.Context, order models.Order, typ, title string) {
	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"storeId": order.StoreID}).Decode(&store); err != nil {
		log.Println("refund store lookup error:", err)
		return
	}
	if err := mq.Notify(ctx, models.Notification{
		UserID:     store.OwnerID,
		Type:       typ,
		Title:      title,
		EntityID:   order.OrderID,
		EntityType: "order",
	}); err != nil {
		log.Println("refund notify error:", err)
	}
}
