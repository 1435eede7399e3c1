package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"psychopulse/internal/model"
)

// ResultRepo handles MongoDB operations for the result history. The
// history is append-only: results are immutable once written and are
// never updated or deleted.
type ResultRepo interface {
	Append(ctx context.Context, result *model.SurveyResult) error
	GetByID(ctx context.Context, id string) (*model.SurveyResult, error)
	GetByUserID(ctx context.Context, userID string) ([]*model.SurveyResult, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("results"),
	}
}

func (r *resultRepo) Append(ctx context.Context, result *model.SurveyResult) error {
	_, err := r.collection.InsertOne(ctx, result)
	return err
}

func (r *resultRepo) GetByID(ctx context.Context, id string) (*model.SurveyResult, error) {
	var result model.SurveyResult
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByUserID returns the user's history ordered by timestamp ascending,
// the ordering the derivation layer expects.
func (r *resultRepo) GetByUserID(ctx context.Context, userID string) ([]*model.SurveyResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.SurveyResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
