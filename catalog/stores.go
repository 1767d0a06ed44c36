package catalog

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
)

// CreateStore opens the caller's store. One store per owner; the check is an
// application-level count, matching how the rest of the write paths guard
// duplicates.
func CreateStore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	count, err := db.StoresCollection.CountDocuments(ctx, bson.M{"ownerId": userID})
	if err != nil {
		log.Println("CreateStore CountDocuments error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing store")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "You already have a store")
		return
	}

	var store models.Store
	if err := json.NewDecoder(r.Body).Decode(&store); err != nil || store.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Store name is required")
		return
	}

	now := time.Now()
	store.StoreID = utils.GetUUID()
	store.OwnerID = userID
	store.AverageRating = 0
	store.TotalReviews = 0
	store.CreatedAt = now
	store.UpdatedAt = now

	if _, err := db.StoresCollection.InsertOne(ctx, store); err != nil {
		log.Println("CreateStore InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create store")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, store)
}

// EditStore updates the caller's store profile.
func EditStore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var patch struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
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

	res, err := db.StoresCollection.UpdateOne(ctx, bson.M{"ownerId": userID}, bson.M{"$set": update})
	if err != nil {
		log.Println("EditStore UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update store")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Store not found")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Store updated", nil)
}

// GetStore returns a store's public profile.
func GetStore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"storeId": ps.ByName("storeid")}).Decode(&store); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Store not found")
		return
	}

	utils.RespondWithData(w, http.StatusOK, store)
}

// GetMyStore returns the caller's own store.
func GetMyStore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"ownerId": userID}).Decode(&store); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Store not found")
		return
	}

	utils.RespondWithData(w, http.StatusOK, store)
}
