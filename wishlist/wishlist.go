package wishlist

import (
	"context"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ToggleWishlist adds the product to the caller's wishlist, or removes it if
// already present. The response reports the resulting state.
func ToggleWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	filter := bson.M{"userId": userID, "productId": productID}
	res, err := db.WishlistCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	if res.DeletedCount > 0 {
		utils.RespondWithData(w, http.StatusOK, utils.M{"wishlisted": false})
		return
	}

	item := models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}
	if _, err := db.WishlistCollection.InsertOne(ctx, item); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	utils.RespondWithData(w, http.StatusOK, utils.M{"wishlisted": true})
}

type wishlistEntry struct {
	ProductID string         `json:"productId"`
	AddedAt   time.Time      `json:"addedAt"`
	Product   *models.Product `json:"product,omitempty"`
}

// GetWishlist lists the caller's wishlist, newest first, with current product
// details where the product still exists.
func GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 100)

	opts := options.Find().
		SetSort(bson.D{{Key: "addedAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	items, err := utils.FindAndDecode[models.WishlistItem](ctx, db.WishlistCollection, bson.M{"userId": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}

	products := map[string]models.Product{}
	if len(productIDs) > 0 {
		found, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, bson.M{"productId": bson.M{"$in": productIDs}})
		if err != nil && err != mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}
		for _, p := range found {
			products[p.ProductID] = p
		}
	}

	entries := make([]wishlistEntry, 0, len(items))
	for _, it := range items {
		entry := wishlistEntry{ProductID: it.ProductID, AddedAt: it.AddedAt}
		if p, ok := products[it.ProductID]; ok {
			product := p
			entry.Product = &product
		}
		entries = append(entries, entry)
	}

	utils.RespondWithData(w, http.StatusOK, entries)
}
