package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pasarin/activity"
	"pasarin/db"
	"pasarin/models"
	"pasarin/mq"
	"pasarin/rdx"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCachePrefix = "product:"

// GetProducts lists active products, optional ?q=, ?category=, ?storeId= filters.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"status": models.ProductActive}
	q := r.URL.Query()
	if cat := q.Get("category"); cat != "" {
		filter["categoryId"] = cat
	}
	if storeID := q.Get("storeId"); storeID != "" {
		filter["storeId"] = storeID
	}
	if search := q.Get("q"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	sort := utils.ParseSort(q.Get("sort"), bson.D{{Key: "createdAt", Value: -1}}, map[string]bson.D{
		"price_asc":  {{Key: "price", Value: 1}},
		"price_desc": {{Key: "price", Value: -1}},
		"rating":     {{Key: "rating", Value: -1}},
	})
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)

	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, filter, opts)
	if err != nil {
		log.Println("GetProducts Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	utils.RespondWithData(w, http.StatusOK, NewProductViews(products))
}

// GetProduct returns one product by id, serving from the Redis cache when warm.
// Authenticated viewers get a view activity event recorded.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	if cached, err := rdx.RdxGet(productCachePrefix + productID); err == nil && cached != "" {
		var view ProductView
		if err := json.Unmarshal([]byte(cached), &view); err == nil {
			recordView(r, view.Product)
			utils.RespondWithData(w, http.StatusOK, view)
			return
		}
	}

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": productID}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	view := NewProductView(product)
	if data, err := json.Marshal(view); err == nil {
		if err := rdx.RdxSetWithTTL(productCachePrefix+productID, string(data), 5*time.Minute); err != nil {
			log.Println("GetProduct cache set error:", err)
		}
	}

	recordView(r, product)
	utils.RespondWithData(w, http.StatusOK, view)
}

func recordView(r *http.Request, p models.Product) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return
	}
	activity.Record(context.Background(), models.Activity{
		UserID:    userID,
		Action:    models.ActivityView,
		ProductID: p.ProductID,
		StoreID:   p.StoreID,
	})
}

// CreateProduct registers a new product under the seller's store.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"ownerId": userID}).Decode(&store); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "You need a store before adding products")
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if product.Name == "" || product.Price <= 0 || product.StockQuantity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, positive price and non-negative stock are required")
		return
	}
	if product.DiscountPrice < 0 || product.DiscountPrice >= product.Price {
		utils.RespondWithError(w, http.StatusBadRequest, "Discount price must be below the list price")
		return
	}

	now := time.Now()
	product.ProductID = utils.GetUUID()
	product.SellerID = userID
	product.StoreID = store.StoreID
	if product.Status == "" {
		product.Status = models.ProductDraft
	}
	if !utils.Contains([]string{models.ProductDraft, models.ProductActive, models.ProductInactive, models.ProductOutOfStock}, product.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product status")
		return
	}
	product.Rating = 0
	product.ReviewCount = 0
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	go mq.Emit(r.Context(), "product-created", models.Index{
		EntityType: "product", EntityId: product.ProductID, Method: "POST",
		ItemId: store.StoreID, ItemType: "store",
	})

	utils.RespondWithData(w, http.StatusCreated, NewProductView(product))
}

// EditProduct applies a partial update to a product the caller owns.
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": productID, "sellerId": userID}).Decode(&product)
	if err != nil {
		// Not owned reads as not found
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	var patch struct {
		Name          *string  `json:"name"`
		Description   *string  `json:"description"`
		CategoryID    *string  `json:"categoryId"`
		Price         *float64 `json:"price"`
		DiscountPrice *float64 `json:"discountPrice"`
		StockQuantity *int     `json:"stockQuantity"`
		Status        *string  `json:"status"`
		Weight        *float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil && *patch.Name != "" {
		update["name"] = *patch.Name
	}
	if patch.Description != nil {
		update["description"] = *patch.Description
	}
	if patch.CategoryID != nil {
		update["categoryId"] = *patch.CategoryID
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Price must be positive")
			return
		}
		update["price"] = *patch.Price
	}
	if patch.DiscountPrice != nil {
		if *patch.DiscountPrice < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Discount price must be non-negative")
			return
		}
		update["discountPrice"] = *patch.DiscountPrice
	}
	if patch.StockQuantity != nil {
		if *patch.StockQuantity < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Stock must be non-negative")
			return
		}
		update["stockQuantity"] = *patch.StockQuantity
	}
	if patch.Status != nil {
		if !utils.Contains([]string{models.ProductDraft, models.ProductActive, models.ProductInactive, models.ProductOutOfStock}, *patch.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid product status")
			return
		}
		update["status"] = *patch.Status
	}
	if patch.Weight != nil {
		update["weight"] = *patch.Weight
	}

	if _, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productId": productID}, bson.M{"$set": update}); err != nil {
		log.Println("EditProduct UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	if _, err := rdx.RdxDel(productCachePrefix + productID); err != nil {
		log.Println("EditProduct cache invalidation error:", err)
	}

	go mq.Emit(r.Context(), "product-edited", models.Index{
		EntityType: "product", EntityId: productID, Method: "PUT",
		ItemId: product.StoreID, ItemType: "store",
	})

	utils.RespondWithMessage(w, http.StatusOK, "Product updated", nil)
}

// DeleteProduct removes a product the caller owns.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productId": productID, "sellerId": userID})
	if err != nil {
		log.Println("DeleteProduct DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if _, err := rdx.RdxDel(productCachePrefix + productID); err != nil {
		log.Println("DeleteProduct cache invalidation error:", err)
	}

	go mq.Emit(r.Context(), "product-deleted", models.Index{
		EntityType: "product", EntityId: productID, Method: "DELETE",
	})

	utils.RespondWithMessage(w, http.StatusOK, "Product deleted", nil)
}

// SellerProducts lists the caller's own products regardless of status.
func SellerProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, bson.M{"sellerId": userID}, opts)
	if err != nil && err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	utils.RespondWithData(w, http.StatusOK, NewProductViews(products))
}
