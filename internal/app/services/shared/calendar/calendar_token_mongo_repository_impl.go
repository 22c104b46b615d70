package calendar

import (
	"context"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type calendarTokenMongoRepository struct {
	collection *mongo.Collection
}

func NewCalendarTokenMongoRepository(client *mongo.Client, dbName string) contracts.CalendarTokenRepository {
	return &calendarTokenMongoRepository{
		collection: client.Database(dbName).Collection(constvars.MongoCollectionCalendarTokens),
	}
}

func (r *calendarTokenMongoRepository) Load(ctx context.Context, instructorID string) (*models.CalendarToken, error) {
	token := new(models.CalendarToken)
	err := r.collection.FindOne(ctx, bson.M{"_id": instructorID}).Decode(token)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return token, nil
}
