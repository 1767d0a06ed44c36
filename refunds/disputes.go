package refunds

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateDispute escalates an order, optionally referencing a refund request.
// The seller side is derived from the order's store ownership; resolution is
// handled by back-office tooling, not here.
func CreateDispute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("orderid")

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		RefundID    string `json:"refundId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Title == "" || input.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID, "userId": userID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"storeId": order.StoreID}).Decode(&store); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Order has no associated store")
		return
	}

	if input.RefundID != "" {
		count, err := db.RefundsCollection.CountDocuments(ctx, bson.M{"refundId": input.RefundID, "orderId": orderID})
		if err != nil || count == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Referenced refund request not found for this order")
			return
		}
	}

	dispute := models.Dispute{
		DisputeID:   utils.GetUUID(),
		OrderID:     orderID,
		RefundID:    input.RefundID,
		BuyerID:     userID,
		SellerID:    store.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      "open",
		CreatedAt:   time.Now(),
	}

	if _, err := db.DisputesCollection.InsertOne(ctx, dispute); err != nil {
		log.Println("CreateDispute InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create dispute")
		return
	}

	notifySeller(ctx, order, "dispute-opened", "Dispute opened for "+order.OrderNumber)

	utils.RespondWithData(w, http.StatusCreated, dispute)
}

// ListDisputes returns disputes where the caller is buyer or seller.
func ListDisputes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	filter := bson.M{"$or": []bson.M{{"buyerId": userID}, {"sellerId": userID}}}
	disputes, err := utils.FindAndDecode[models.Dispute](ctx, db.DisputesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve disputes")
		return
	}

	utils.RespondWithData(w, http.StatusOK, disputes)
}
