package models

import "time"

// Product statuses
const (
	ProductDraft      = "draft"
	ProductActive     = "active"
	ProductInactive   = "inactive"
	ProductOutOfStock = "out_of_stock"
)

type Product struct {
	ProductID     string    `json:"productId" bson:"productId"`
	SellerID      string    `json:"sellerId" bson:"sellerId"`
	StoreID       string    `json:"storeId" bson:"storeId"`
	CategoryID    string    `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Price         float64   `json:"price" bson:"price"`
	DiscountPrice float64   `json:"discountPrice,omitempty" bson:"discountPrice,omitempty"`
	StockQuantity int       `json:"stockQuantity" bson:"stockQuantity"`
	Status        string    `json:"status" bson:"status"`
	Weight        float64   `json:"weight,omitempty" bson:"weight,omitempty"` // kg
	Rating        float64   `json:"rating" bson:"rating"`
	ReviewCount   int       `json:"reviewCount" bson:"reviewCount"`
	Images        []string  `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// EffectivePrice is the discount price when set and positive, else the list price.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// MainImage is the first uploaded image, empty when none exist.
func (p *Product) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

type Store struct {
	StoreID       string    `json:"storeId" bson:"storeId"`
	OwnerID       string    `json:"ownerId" bson:"ownerId"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Logo          string    `json:"logo,omitempty" bson:"logo,omitempty"`
	AverageRating float64   `json:"averageRating" bson:"averageRating"`
	TotalReviews  int       `json:"totalReviews" bson:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Category struct {
	CategoryID string `json:"categoryId" bson:"categoryId"`
	ParentID   string `json:"parentId,omitempty" bson:"parentId,omitempty"`
	Name       string `json:"name" bson:"name"`
	Slug       string `json:"slug" bson:"slug"`
}
