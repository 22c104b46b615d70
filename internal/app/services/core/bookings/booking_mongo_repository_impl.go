package bookings

import (
	"context"
	"time"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingMongoRepository struct {
	Collection *mongo.Collection
}

func NewBookingMongoRepository(db *mongo.Client, dbName string) contracts.BookingRepository {
	return &BookingMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBookings),
	}
}

// CreateIfAbsent relies on the unique _id index: a second insert with the
// same booking ID fails on the server, so two racing creates cannot both win.
func (r *BookingMongoRepository) CreateIfAbsent(ctx context.Context, booking *models.Booking) error {
	_, err := r.Collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrBookingAlreadyExists(err)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *BookingMongoRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.Collection.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}

func (r *BookingMongoRepository) FindByInstructorAndWindow(ctx context.Context, instructorID string, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"instructorId": instructorID,
		"startAt": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var results []models.Booking
	if err := cursor.All(ctx, &results); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return results, nil
}

// UpdateStatusConditionally performs the status transition as a single
// findAndModify gated on the expected prior statuses. When the gate rejects
// the update the current document is fetched so the caller can tell a missing
// booking from one that already moved on.
func (r *BookingMongoRepository) UpdateStatusConditionally(ctx context.Context, input *contracts.UpdateBookingStatusInput) (*contracts.UpdateBookingStatusOutput, error) {
	filter := bson.M{"_id": input.BookingID}
	if len(input.ExpectedPrior) > 0 {
		filter["status"] = bson.M{"$in": input.ExpectedPrior}
	}

	setFields := bson.M{
		"status":    input.NewStatus,
		"updatedAt": time.Now().UTC(),
	}
	if input.PaymentReference != "" {
		setFields["paymentReference"] = input.PaymentReference
	}
	if input.CheckoutSessionID != "" {
		setFields["checkoutSessionId"] = input.CheckoutSessionID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.Collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": setFields}, opts).Decode(&updated)
	if err == nil {
		return &contracts.UpdateBookingStatusOutput{Booking: &updated, Applied: true}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}

	current, err := r.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrBookingNotFound(nil)
	}
	return &contracts.UpdateBookingStatusOutput{Booking: current, Applied: false}, nil
}
