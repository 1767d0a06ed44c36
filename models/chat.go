package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat is a buyer↔seller thread, optionally anchored to a product.
type Chat struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Users         []string           `json:"users" bson:"users"`
	BuyerID       string             `json:"buyerId" bson:"buyerId"`
	SellerID      string             `json:"sellerId" bson:"sellerId"`
	StoreID       string             `json:"storeId,omitempty" bson:"storeId,omitempty"`
	ProductID     string             `json:"productId,omitempty" bson:"productId,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	LastMessageAt time.Time          `json:"lastMessageAt" bson:"lastMessageAt"`
}

type ReplyRef struct {
	ID   string `json:"id" bson:"id"`
	User string `json:"user" bson:"user"`
	Text string `json:"text" bson:"text"`
}

type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ChatID    string             `json:"chatId" bson:"chatId"`
	UserID    string             `json:"userId" bson:"userId"`
	Text      string             `json:"text,omitempty" bson:"text,omitempty"`
	FileURL   string             `json:"fileUrl,omitempty" bson:"fileUrl,omitempty"`
	FileType  string             `json:"fileType,omitempty" bson:"fileType,omitempty"`
	ReplyTo   *ReplyRef          `json:"replyTo,omitempty" bson:"replyTo,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
