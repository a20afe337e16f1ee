package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	UserRolesCollection *mongo.Collection
	RequestsCollection  *mongo.Collection
	BookingsCollection  *mongo.Collection
	ChecklistCollection *mongo.Collection
	PricingCollection   *mongo.Collection
	GalleryCollection   *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("churchdb")
	UserCollection = database.Collection("users")
	UserRolesCollection = database.Collection("user_roles")
	RequestsCollection = database.Collection("contact_requests")
	BookingsCollection = database.Collection("bookings")
	ChecklistCollection = database.Collection("checklist_submissions")
	PricingCollection = database.Collection("pricing_rules")
	GalleryCollection = database.Collection("gallery")
}
