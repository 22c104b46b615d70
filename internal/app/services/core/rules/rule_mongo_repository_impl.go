package rules

import (
	"context"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RuleMongoRepository struct {
	Collection *mongo.Collection
}

func NewRuleMongoRepository(db *mongo.Client, dbName string) contracts.RuleRepository {
	return &RuleMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionWeeklyRules),
	}
}

func (r *RuleMongoRepository) Load(ctx context.Context, instructorID string) (*models.WeeklyRule, error) {
	var rule models.WeeklyRule
	err := r.Collection.FindOne(ctx, bson.M{"_id": instructorID}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &rule, nil
}

// Save replaces the instructor's rule document wholesale, creating it when
// absent. Partial block updates are not supported at the storage level.
func (r *RuleMongoRepository) Save(ctx context.Context, rule *models.WeeklyRule) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": rule.InstructorID}, rule, opts)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
