package models

import "time"

// CartItem is one (product, variant) line in a user's cart. The cart itself
// is implicit: it is the set of items keyed by userId.
type CartItem struct {
	ItemID    string    `json:"itemId" bson:"itemId"`
	UserID    string    `json:"userId" bson:"userId"`
	ProductID string    `json:"productId" bson:"productId"`
	Variant   string    `json:"variant,omitempty" bson:"variant,omitempty"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CartItemView is the read-side composition of a cart item with its product.
type CartItemView struct {
	ItemID    string  `json:"itemId"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Variant   string  `json:"variant,omitempty"`
	Image     string  `json:"image,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	StoreID   string  `json:"storeId"`
	StoreName string  `json:"storeName"`
	InStock   bool    `json:"inStock"`
}

type CartView struct {
	Items     []CartItemView `json:"items"`
	ItemCount int            `json:"itemCount"`
	Total     float64        `json:"total"`
}
