package models

import "time"

// Activity actions
const (
	ActivityView  = "view"
	ActivityCart  = "cart"
	ActivityOrder = "order"
)

// Activity is one append-only user-product interaction event.
type Activity struct {
	UserID    string    `json:"userId" bson:"userId"`
	Action    string    `json:"action" bson:"action"`
	ProductID string    `json:"productId" bson:"productId"`
	StoreID   string    `json:"storeId,omitempty" bson:"storeId,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type Notification struct {
	NotifID    string    `json:"notifId" bson:"notifId"`
	UserID     string    `json:"userId" bson:"userId"`
	Type       string    `json:"type" bson:"type"`
	Title      string    `json:"title" bson:"title"`
	Body       string    `json:"body,omitempty" bson:"body,omitempty"`
	EntityID   string    `json:"entityId,omitempty" bson:"entityId,omitempty"`
	EntityType string    `json:"entityType,omitempty" bson:"entityType,omitempty"`
	Read       bool      `json:"read" bson:"read"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

type WishlistItem struct {
	UserID    string    `json:"userId" bson:"userId"`
	ProductID string    `json:"productId" bson:"productId"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

// Index is an event payload published to the fanout channel.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}
