package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ProductsCollection      *mongo.Collection
	CategoriesCollection    *mongo.Collection
	StoresCollection        *mongo.Collection
	CartCollection          *mongo.Collection
	OrdersCollection        *mongo.Collection
	RefundsCollection       *mongo.Collection
	DisputesCollection      *mongo.Collection
	ReviewsCollection       *mongo.Collection
	ShipmentsCollection     *mongo.Collection
	WishlistCollection      *mongo.Collection
	NotificationsCollection *mongo.Collection
	ChatsCollection         *mongo.Collection
	MessagesCollection      *mongo.Collection
	ActivitiesCollection    *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("pasarindb")
	ProductsCollection = database.Collection("products")
	CategoriesCollection = database.Collection("categories")
	StoresCollection = database.Collection("stores")
	CartCollection = database.Collection("cart")
	OrdersCollection = database.Collection("orders")
	RefundsCollection = database.Collection("refunds")
	DisputesCollection = database.Collection("disputes")
	ReviewsCollection = database.Collection("reviews")
	ShipmentsCollection = database.Collection("shipments")
	WishlistCollection = database.Collection("wishlist")
	NotificationsCollection = database.Collection("notifications")
	ChatsCollection = database.Collection("chats")
	MessagesCollection = database.Collection("messages")
	ActivitiesCollection = database.Collection("activities")
}
