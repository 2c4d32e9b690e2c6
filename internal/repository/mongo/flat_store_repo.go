// internal/repository/mongo/flat_store_repo.go
package mongo

import (
	"alcyxob/workout-map/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollectionName is used when the config leaves the collection empty.
const DefaultCollectionName = "flat_store"

// flatDocument is one key of the flat store. The key is the document _id.
type flatDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoFlatStore implements repository.FlatStore
type mongoFlatStore struct {
	collection *mongo.Collection
}

// NewMongoFlatStore creates a flat store backed by one collection.
func NewMongoFlatStore(db *mongo.Database, collectionName string) repository.FlatStore {
	if collectionName == "" {
		collectionName = DefaultCollectionName
	}
	return &mongoFlatStore{
		collection: db.Collection(collectionName),
	}
}

// Get retrieves the value stored under key.
func (r *mongoFlatStore) Get(ctx context.Context, key string) (string, error) {
	var doc flatDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return doc.Value, nil
}

// Set upserts the value under key.
func (r *mongoFlatStore) Set(ctx context.Context, key, value string) error {
	filter := bson.M{"_id": key}
	update := bson.M{
		"$set": bson.M{
			"value":     value,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// Remove deletes key. A missing key is fine.
func (r *mongoFlatStore) Remove(ctx context.Context, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
