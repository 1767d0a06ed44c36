package models

import "time"

// Review statuses
const (
	ReviewPublished = "published"
	ReviewHidden    = "hidden"
)

// Review is unique per (user, product); a re-submission replaces the old one.
type Review struct {
	ReviewID  string    `json:"reviewId" bson:"reviewId"`
	UserID    string    `json:"userId" bson:"userId"`
	ProductID string    `json:"productId" bson:"productId"`
	OrderID   string    `json:"orderId" bson:"orderId"`
	StoreID   string    `json:"storeId" bson:"storeId"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	Media     []string  `json:"media,omitempty" bson:"media,omitempty"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Shipment struct {
	ShipmentID     string    `json:"shipmentId" bson:"shipmentId"`
	OrderID        string    `json:"orderId" bson:"orderId"`
	Courier        string    `json:"courier" bson:"courier"`
	Service        string    `json:"service,omitempty" bson:"service,omitempty"`
	TrackingNumber string    `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	Status         string    `json:"status" bson:"status"` // informational free text
	Cost           float64   `json:"cost" bson:"cost"`
	EstimatedDays  int       `json:"estimatedDays,omitempty" bson:"estimatedDays,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}
