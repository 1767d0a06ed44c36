package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pasarin/activity"
	"pasarin/db"
	"pasarin/models"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToCart increments quantity if the (product, variant) line exists, or
// inserts a new CartItem. The merged quantity is checked against stock first.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		Variant   string `json:"variant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ProductID == "" || input.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Product id and a quantity of at least 1 are required")
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": input.ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	// Merge with any existing line for the same (product, variant)
	var existing models.CartItem
	merged := input.Quantity
	err := db.CartCollection.FindOne(ctx, bson.M{
		"userId":    userID,
		"productId": input.ProductID,
		"variant":   input.Variant,
	}).Decode(&existing)
	if err == nil {
		merged += existing.Quantity
	}

	if product.StockQuantity < merged {
		utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock for requested quantity")
		return
	}

	now := time.Now()
	filter := bson.M{
		"userId":    userID,
		"productId": input.ProductID,
		"variant":   input.Variant,
	}
	update := bson.M{
		"$inc": bson.M{"quantity": input.Quantity},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"itemId":  utils.GetUUID(),
			"addedAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := db.CartCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("AddToCart UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	activity.Record(context.Background(), models.Activity{
		UserID:    userID,
		Action:    models.ActivityCart,
		ProductID: product.ProductID,
		StoreID:   product.StoreID,
	})

	utils.RespondWithMessage(w, http.StatusCreated, "Added to cart", nil)
}

// GetCart returns the caller's cart view with derived totals.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := utils.FindAndDecode[models.CartItem](ctx, db.CartCollection, bson.M{"userId": userID})
	if err != nil {
		log.Println("GetCart Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	products, stores, err := loadCartRefs(ctx, items)
	if err != nil {
		log.Println("GetCart refs error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	utils.RespondWithData(w, http.StatusOK, BuildCartView(items, products, stores))
}

func loadCartRefs(ctx context.Context, items []models.CartItem) (map[string]models.Product, map[string]models.Store, error) {
	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}

	products := map[string]models.Product{}
	stores := map[string]models.Store{}
	if len(productIDs) == 0 {
		return products, stores, nil
	}

	prods, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, bson.M{"productId": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, nil, err
	}
	storeIDs := make([]string, 0, len(prods))
	for _, p := range prods {
		products[p.ProductID] = p
		storeIDs = append(storeIDs, p.StoreID)
	}

	strs, err := utils.FindAndDecode[models.Store](ctx, db.StoresCollection, bson.M{"storeId": bson.M{"$in": storeIDs}})
	if err != nil {
		return nil, nil, err
	}
	for _, s := range strs {
		stores[s.StoreID] = s
	}
	return products, stores, nil
}

// UpdateCartItem changes the quantity of one line in the caller's cart.
// A line belonging to another user reads as not found.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	itemID := ps.ByName("itemid")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	var item models.CartItem
	if err := db.CartCollection.FindOne(ctx, bson.M{"itemId": itemID, "userId": userID}).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart item not found")
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": item.ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if product.StockQuantity < input.Quantity {
		utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock for requested quantity")
		return
	}

	if _, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"itemId": itemID, "userId": userID},
		bson.M{"$set": bson.M{"quantity": input.Quantity, "updatedAt": time.Now()}},
	); err != nil {
		log.Println("UpdateCartItem UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Cart updated", nil)
}

// RemoveCartItem deletes one line from the caller's cart.
func RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	itemID := ps.ByName("itemid")

	res, err := db.CartCollection.DeleteOne(ctx, bson.M{"itemId": itemID, "userId": userID})
	if err != nil {
		log.Println("RemoveCartItem DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Cart item not found")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Item removed", nil)
}

// ClearCart empties the caller's cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		log.Println("ClearCart DeleteMany error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Cart cleared", nil)
}
