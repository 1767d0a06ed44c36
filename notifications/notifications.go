package notifications

import (
	"context"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 100)

	filter := bson.M{"userId": userID}
	if r.URL.Query().Get("unread") == "true" {
		filter["read"] = false
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	notifs, err := utils.FindAndDecode[models.Notification](ctx, db.NotificationsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	utils.RespondWithData(w, http.StatusOK, notifs)
}

// GetUnreadCount returns how many notifications the caller has not read.
func GetUnreadCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	count, err := db.NotificationsCollection.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count notifications")
		return
	}

	utils.RespondWithData(w, http.StatusOK, utils.M{"unread": count})
}

// MarkRead marks one notification as read. Marking an already-read
// notification is a no-op.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	notifID := ps.ByName("notifid")

	res, err := db.NotificationsCollection.UpdateOne(ctx,
		bson.M{"notifId": notifID, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead marks every unread notification of the caller as read.
func MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	res, err := db.NotificationsCollection.UpdateMany(ctx,
		bson.M{"userId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	utils.RespondWithData(w, http.StatusOK, utils.M{"updated": res.ModifiedCount})
}
