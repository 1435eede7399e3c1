package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BenchmarkRepo handles MongoDB operations for company benchmark
// averages, keyed by category label.
type BenchmarkRepo interface {
	GetAll(ctx context.Context) (map[string]float64, error)
	Upsert(ctx context.Context, category string, value float64) error
}

type benchmarkDoc struct {
	Category string  `bson:"_id"`
	Value    float64 `bson:"value"`
}

type benchmarkRepo struct {
	collection *mongo.Collection
}

// NewBenchmarkRepo creates a new benchmark repository
func NewBenchmarkRepo(db *mongo.Database) BenchmarkRepo {
	return &benchmarkRepo{
		collection: db.Collection("benchmarks"),
	}
}

func (r *benchmarkRepo) GetAll(ctx context.Context) (map[string]float64, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	benchmarks := make(map[string]float64)
	for cursor.Next(ctx) {
		var doc benchmarkDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		benchmarks[doc.Category] = doc.Value
	}
	return benchmarks, cursor.Err()
}

func (r *benchmarkRepo) Upsert(ctx context.Context, category string, value float64) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": category},
		benchmarkDoc{Category: category, Value: value}, opts)
	return err
}
