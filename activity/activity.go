package activity

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/rdx"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record appends one activity event and publishes it for the recommender.
// Failures are logged, never surfaced; activity is advisory.
func Record(ctx context.Context, a models.Activity) {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}

	if _, err := db.ActivitiesCollection.InsertOne(ctx, a); err != nil {
		log.Println("activity insert error:", err)
		return
	}

	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := rdx.Conn.Publish(context.Background(), "activity-events", data).Err(); err != nil {
		log.Println("activity publish error:", err)
	}
}

// LogActivities accepts a batch of events from the client.
func LogActivities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var activities []models.Activity
	if err := json.NewDecoder(r.Body).Decode(&activities); err != nil || len(activities) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(activities))
	for i := range activities {
		activities[i].UserID = userID
		activities[i].Timestamp = now
		docs = append(docs, activities[i])
	}

	if _, err := db.ActivitiesCollection.InsertMany(ctx, docs); err != nil {
		log.Println("LogActivities InsertMany error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log activities")
		return
	}

	for _, a := range activities {
		data, _ := json.Marshal(a)
		if err := rdx.Conn.Publish(context.Background(), "activity-events", data).Err(); err != nil {
			log.Println("activity publish error:", err)
		}
	}

	utils.RespondWithMessage(w, http.StatusCreated, "Activities logged", nil)
}

// GetActivityFeed returns the caller's recent activity, newest first.
func GetActivityFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skip, limit := utils.ParsePagination(r, 50, 200)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "timestamp", Value: -1}})

	activities, err := utils.FindAndDecode[models.Activity](ctx, db.ActivitiesCollection, bson.M{"userId": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}

	utils.RespondWithData(w, http.StatusOK, activities)
}
