package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/tablefare/restaurant-backend/internal/catalog"
	"github.com/tablefare/restaurant-backend/internal/database"
)

// Loads the stock catalog into MongoDB. Intended for fresh deployments and
// local development databases.
func main() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "restaurant"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, uri, 10*time.Second)
	if err != nil {
		log.Fatalf("cannot connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(dbName)
	err = catalog.Seed(ctx,
		catalog.NewMongoDishRepository(db.Collection("dishes")),
		catalog.NewMongoLeaderRepository(db.Collection("leaders")),
		catalog.NewMongoPromotionRepository(db.Collection("promotions")),
	)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("seeded stock catalog into %q", dbName)
}
