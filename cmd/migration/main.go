package main

import (
	"context"
	"log"
	"time"

	"lessonbook-service/internal/app/config"
	"lessonbook-service/internal/app/drivers/database"
	"lessonbook-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Creates the indexes the service relies on. Safe to run repeatedly; index
// creation is a no-op when the index already exists.
func main() {
	driverConfig := config.NewDriverConfig()
	client := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	db := client.Database(driverConfig.MongoDB.DbName)

	// Conflict filtering queries bookings by instructor and day window.
	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "instructorId", Value: 1}, {Key: "startAt", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	names, err := db.Collection(constvars.MongoCollectionBookings).Indexes().CreateMany(ctx, bookingIndexes)
	if err != nil {
		log.Fatalf("Failed to create booking indexes: %v", err)
	}
	log.Printf("Created booking indexes: %v", names)

	log.Println("Migration complete")
}
