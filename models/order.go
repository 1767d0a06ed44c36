package models

import "time"

// Order statuses
const (
	OrderPending    = "pending"
	OrderPaid       = "paid"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Payment statuses
const (
	PaymentUnpaid  = "unpaid"
	PaymentPaid    = "paid"
	PaymentExpired = "expired"
	PaymentFailed  = "failed"
)

// Refund statuses carried on the order
const (
	RefundNone      = ""
	RefundRequested = "requested"
)

// OrderItem is an immutable snapshot of the product at purchase time.
type OrderItem struct {
	ProductID   string  `json:"productId" bson:"productId"`
	ProductName string  `json:"productName" bson:"productName"`
	Variant     string  `json:"variant,omitempty" bson:"variant,omitempty"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
	UnitPrice   float64 `json:"unitPrice" bson:"unitPrice"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Subtotal    float64 `json:"subtotal" bson:"subtotal"`
}

// Order groups the items of one store from a single checkout.
type Order struct {
	OrderID          string      `json:"orderId" bson:"orderId"`
	OrderNumber      string      `json:"orderNumber" bson:"orderNumber"`
	UserID           string      `json:"userId" bson:"userId"`
	StoreID          string      `json:"storeId" bson:"storeId"`
	Items            []OrderItem `json:"items" bson:"items"`
	ShippingAddress  string      `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod    string      `json:"paymentMethod" bson:"paymentMethod"`
	TotalAmount      float64     `json:"totalAmount" bson:"totalAmount"`
	Status           string      `json:"status" bson:"status"`
	PaymentStatus    string      `json:"paymentStatus" bson:"paymentStatus"`
	PaymentReference string      `json:"paymentReference,omitempty" bson:"paymentReference,omitempty"`
	RefundStatus     string      `json:"refundStatus,omitempty" bson:"refundStatus,omitempty"`
	PaidAt           *time.Time  `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PaymentExpiredAt *time.Time  `json:"paymentExpiredAt,omitempty" bson:"paymentExpiredAt,omitempty"`
	CreatedAt        time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// AllowedOrderStatuses is the value set a seller may assign directly.
var AllowedOrderStatuses = []string{
	OrderPending, OrderPaid, OrderProcessing, OrderShipped,
	OrderDelivered, OrderCompleted, OrderCancelled,
}
