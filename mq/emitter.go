package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/rdx"
	"pasarin/utils"
)

// Emit publishes an entity change event to the marketplace-events channel.
// Consumers (recommendation indexer, search) pick these up asynchronously.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), "marketplace-events", data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
	}
}

// Notify persists a notification for a user and publishes it for live delivery.
func Notify(ctx context.Context, n models.Notification) error {
	if n.NotifID == "" {
		n.NotifID = utils.GetUUID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if _, err := db.NotificationsCollection.InsertOne(ctx, n); err != nil {
		return err
	}

	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := rdx.Conn.Publish(context.Background(), "notification-events", data).Err(); err != nil {
		log.Printf("[Notify] publish failed for user %s: %v", n.UserID, err)
	}
	return nil
}
