package orders

import (
	"context"
	"encoding/json"
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

// GetOrders lists the caller's orders, newest first.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 100)

	filter := bson.M{"userId": userID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		log.Println("GetOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	utils.RespondWithData(w, http.StatusOK, orders)
}

// GetOrder returns one order visible to the caller: either the buyer or the
// owner of the store it belongs to. Anyone else reads not found.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("orderid")

	order, ok := findVisibleOrder(ctx, orderID, userID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithData(w, http.StatusOK, order)
}

func findVisibleOrder(ctx context.Context, orderID, userID string) (models.Order, bool) {
	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order); err != nil {
		return order, false
	}
	if order.UserID == userID {
		return order, true
	}

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"storeId": order.StoreID}).Decode(&store); err != nil {
		return order, false
	}
	return order, store.OwnerID == userID
}

// SellerOrders lists the orders placed against the caller's store.
func SellerOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"ownerId": userID}).Decode(&store); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Store not found")
		return
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	filter := bson.M{"storeId": store.StoreID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	utils.RespondWithData(w, http.StatusOK, orders)
}

// UpdateOrderStatus lets a seller move an order to any status in the allowed
// set. No ordering is enforced beyond membership in that set.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("orderid")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !utils.Contains(models.AllowedOrderStatuses, input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"storeId": order.StoreID}).Decode(&store); err != nil || store.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "You do not manage this order")
		return
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
	); err != nil {
		log.Println("UpdateOrderStatus UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	if err := mq.Notify(ctx, models.Notification{
		UserID:     order.UserID,
		Type:       "order-status",
		Title:      "Order " + order.OrderNumber + " is now " + input.Status,
		EntityID:   order.OrderID,
		EntityType: "order",
	}); err != nil {
		log.Println("UpdateOrderStatus notify error:", err)
	}

	utils.RespondWithMessage(w, http.StatusOK, "Order status updated", nil)
}
