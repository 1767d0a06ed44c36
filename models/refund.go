package models

import "time"

// Refund request statuses
const (
	RefundPending    = "pending"
	RefundApproved   = "approved"
	RefundProcessing = "processing"
	RefundCompleted  = "completed"
	RefundRejected   = "rejected"
)

// ActiveRefundStatuses are the in-flight states; at most one refund per
// (order, user) may be in any of them.
var ActiveRefundStatuses = []string{RefundPending, RefundApproved, RefundProcessing}

type RefundRequest struct {
	RefundID  string    `json:"refundId" bson:"refundId"`
	OrderID   string    `json:"orderId" bson:"orderId"`
	UserID    string    `json:"userId" bson:"userId"`
	Reason    string    `json:"reason" bson:"reason"`
	Details   string    `json:"details,omitempty" bson:"details,omitempty"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Dispute struct {
	DisputeID   string    `json:"disputeId" bson:"disputeId"`
	OrderID     string    `json:"orderId" bson:"orderId"`
	RefundID    string    `json:"refundId,omitempty" bson:"refundId,omitempty"`
	BuyerID     string    `json:"buyerId" bson:"buyerId"`
	SellerID    string    `json:"sellerId" bson:"sellerId"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Status      string    `json:"status" bson:"status"` // "open" at creation
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
