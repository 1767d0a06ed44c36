package reviews

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

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

// Statuses of an order that entitle its buyer to review the items in it.
var reviewableOrderStatuses = []string{
	models.OrderPaid, models.OrderProcessing, models.OrderShipped,
	models.OrderDelivered, models.OrderCompleted,
}

// GetReviews lists published reviews for a product, newest first.
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	filter := bson.M{"productId": productID, "status": models.ReviewPublished}
	reviews, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithData(w, http.StatusOK, reviews)
}

// AddReview upserts the caller's review for a product. A second submission
// replaces the first. The caller must have a paid-or-later order containing
// the product. Review, product aggregate and store aggregate are written in
// one transaction.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	productID := ps.ByName("productid")

	var input struct {
		Rating  int      `json:"rating"`
		Comment string   `json:"comment"`
		Media   []string `json:"media"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Rating < 1 || input.Rating > 5 || input.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating 1-5 and a comment are required")
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	// Purchase gate: at least one qualifying order line for this product
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{
		"userId":          userID,
		"status":          bson.M{"$in": reviewableOrderStatuses},
		"items.productId": productID,
	}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "You can only review products you have purchased")
		return
	}

	now := time.Now()
	review := models.Review{
		ReviewID:  utils.GetUUID(),
		UserID:    userID,
		ProductID: productID,
		OrderID:   order.OrderID,
		StoreID:   product.StoreID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Media:     input.Media,
		Status:    models.ReviewPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := upsertAndRecompute(ctx, review, product.StoreID); err != nil {
		log.Println("AddReview transaction error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	if _, err := rdx.RdxDel("product:" + productID); err != nil {
		log.Println("AddReview cache invalidation error:", err)
	}

	go mq.Emit(r.Context(), "review-added", models.Index{
		EntityType: "review", EntityId: review.ReviewID, Method: "POST",
		ItemId: productID, ItemType: "product",
	})

	utils.RespondWithData(w, http.StatusCreated, review)
}

// upsertAndRecompute runs the review upsert and both aggregate recomputes in
// a single transaction.
func upsertAndRecompute(ctx context.Context, review models.Review, storeID string) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Keyed by (user, product): replace preserves the created date of
		// the original submission when present.
		var prev models.Review
		filter := bson.M{"userId": review.UserID, "productId": review.ProductID}
		if err := db.ReviewsCollection.FindOne(sc, filter).Decode(&prev); err == nil {
			review.ReviewID = prev.ReviewID
			review.CreatedAt = prev.CreatedAt
		}
		opts := options.Replace().SetUpsert(true)
		if _, err := db.ReviewsCollection.ReplaceOne(sc, filter, review, opts); err != nil {
			return nil, err
		}

		// Product aggregate over published reviews
		published, err := utils.FindAndDecode[models.Review](sc, db.ReviewsCollection,
			bson.M{"productId": review.ProductID, "status": models.ReviewPublished})
		if err != nil {
			return nil, err
		}
		rating, count := ProductAggregate(published)
		if _, err := db.ProductsCollection.UpdateOne(sc,
			bson.M{"productId": review.ProductID},
			bson.M{"$set": bson.M{"rating": rating, "reviewCount": count, "updatedAt": time.Now()}},
		); err != nil {
			return nil, err
		}

		// Store aggregate over its rated products
		storeProducts, err := utils.FindAndDecode[models.Product](sc, db.ProductsCollection,
			bson.M{"storeId": storeID})
		if err != nil {
			return nil, err
		}
		average, total := StoreAggregate(storeProducts)
		if _, err := db.StoresCollection.UpdateOne(sc,
			bson.M{"storeId": storeID},
			bson.M{"$set": bson.M{"averageRating": average, "totalReviews": total, "updatedAt": time.Now()}},
		); err != nil {
			return nil, err
		}

		return nil, nil
	})
	return err
}
