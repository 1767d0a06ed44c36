package shipping

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Placeholder pricing model; no carrier integration.
const (
	baseCost      = 10000.0
	costPerKg     = 2000.0
	expressExtra  = 5000.0
	defaultWeight = 1.0
)

type EstimateItem struct {
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity"`
}

type CourierOption struct {
	Courier       string  `json:"courier"`
	Service       string  `json:"service"`
	Cost          float64 `json:"cost"`
	EstimatedDays int     `json:"estimatedDays"`
}

// TotalWeight sums item weights, substituting 1kg for unspecified weights.
func TotalWeight(items []EstimateItem) float64 {
	total := 0.0
	for _, it := range items {
		w := it.Weight
		if w <= 0 {
			w = defaultWeight
		}
		total += w * float64(it.Quantity)
	}
	return total
}

// EstimateOptions prices the two static courier options for a total weight.
func EstimateOptions(totalWeight float64) []CourierOption {
	kg := totalWeight
	if kg < 1 {
		kg = 1
	}
	cost := baseCost + costPerKg*kg

	return []CourierOption{
		{Courier: "regular", Service: "Regular", Cost: cost, EstimatedDays: 3},
		{Courier: "express", Service: "Express", Cost: cost + expressExtra, EstimatedDays: 1},
	}
}

// Estimate returns courier options for a set of items.
func Estimate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Items []EstimateItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || len(input.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one item is required")
		return
	}
	for _, it := range input.Items {
		if it.Quantity < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}
	}

	weight := TotalWeight(input.Items)
	utils.RespondWithData(w, http.StatusOK, utils.M{
		"totalWeight": weight,
		"options":     EstimateOptions(weight),
	})
}

// GetShipment returns the shipment record attached to one of the caller's
// orders (buyer or store owner).
func GetShipment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("orderid")

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != userID && !ownsStore(ctx, order.StoreID, userID) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	var shipment models.Shipment
	if err := db.ShipmentsCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&shipment); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No shipment recorded for this order")
		return
	}

	utils.RespondWithData(w, http.StatusOK, shipment)
}

func ownsStore(ctx context.Context, storeID, userID string) bool {
	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"storeId": storeID}).Decode(&store); err != nil {
		return false
	}
	return store.OwnerID == userID
}

// UpsertShipment lets the seller record or update shipment details for an
// order of their store. Status is informational free text.
func UpsertShipment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("orderid")

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if !ownsStore(ctx, order.StoreID, userID) {
		utils.RespondWithError(w, http.StatusForbidden, "You do not manage this order")
		return
	}

	var input struct {
		Courier        string  `json:"courier"`
		Service        string  `json:"service"`
		TrackingNumber string  `json:"trackingNumber"`
		Status         string  `json:"status"`
		Cost           float64 `json:"cost"`
		EstimatedDays  int     `json:"estimatedDays"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Courier == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Courier is required")
		return
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"courier":        input.Courier,
			"service":        input.Service,
			"trackingNumber": input.TrackingNumber,
			"status":         input.Status,
			"cost":           input.Cost,
			"estimatedDays":  input.EstimatedDays,
			"updatedAt":      now,
		},
		"$setOnInsert": bson.M{
			"shipmentId": utils.GetUUID(),
			"orderId":    orderID,
			"createdAt":  now,
		},
	}

	if _, err := db.ShipmentsCollection.UpdateOne(ctx, bson.M{"orderId": orderID}, update, options.Update().SetUpsert(true)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record shipment")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Shipment recorded", nil)
}
