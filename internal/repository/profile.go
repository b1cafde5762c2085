// Package repository provides the MongoDB persistence layer for
// press-kit profile documents.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/playbackhq/playback/internal/models"
)

// Collection names understood by the store. Bands holds manually
// assigned slugs, Users holds identity-provider subject ids; public
// resolution tries them in that order.
const (
	Bands = "bands"
	Users = "users"
)

// ErrNoDocument is returned by Get when no profile exists at the id.
var ErrNoDocument = errors.New("no document")

// MongoProfileRepository implements profile persistence against a
// MongoDB database. Every write is either a whole-document replace or
// a single atomic update; there is no field-level merge.
type MongoProfileRepository struct {
	db *mongo.Database
}

// NewMongoProfileRepository creates a repository over the given database.
func NewMongoProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{db: db}
}

// Get fetches the profile stored at id in the named collection. The
// stored document is returned verbatim; missing fields keep their zero
// values and are defaulted at read time by callers.
func (r *MongoProfileRepository) Get(ctx context.Context, collection, id string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return &p, nil
}

// Replace writes the whole profile document at id, creating it if
// absent. Last write wins; there is no version check.
func (r *MongoProfileRepository) Replace(ctx context.Context, collection, id string, p *models.Profile) error {
	_, err := r.db.Collection(collection).ReplaceOne(
		ctx,
		bson.M{"_id": id},
		p,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace %s/%s: %w", collection, id, err)
	}
	return nil
}

// Increment applies a single atomic $inc update. Field paths may be
// dotted (e.g. "dailyViews.2024-05-01"), so concurrent increments from
// different viewers combine instead of racing.
func (r *MongoProfileRepository) Increment(ctx context.Context, collection, id string, fields map[string]int64) error {
	if len(fields) == 0 {
		return nil
	}
	inc := bson.M{}
	for path, by := range fields {
		inc[path] = by
	}
	_, err := r.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": inc})
	if err != nil {
		return fmt.Errorf("increment %s/%s: %w", collection, id, err)
	}
	return nil
}

// Unset removes the named (possibly dotted) fields from the document.
// Used by the daily-views retention pruner.
func (r *MongoProfileRepository) Unset(ctx context.Context, collection, id string, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	unset := bson.M{}
	for _, path := range fields {
		unset[path] = ""
	}
	_, err := r.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$unset": unset})
	if err != nil {
		return fmt.Errorf("unset %s/%s: %w", collection, id, err)
	}
	return nil
}

// ListIDs returns the ids of every document in the collection. The
// pruner walks these to trim stale daily-view buckets.
func (r *MongoProfileRepository) ListIDs(ctx context.Context, collection string) ([]string, error) {
	cursor, err := r.db.Collection(collection).Find(
		ctx,
		bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

// DailyViewKeys returns the date keys present in the document's
// dailyViews map.
func (r *MongoProfileRepository) DailyViewKeys(ctx context.Context, collection, id string) ([]string, error) {
	p, err := r.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(p.DailyViews))
	for k := range p.DailyViews {
		keys = append(keys, k)
	}
	return keys, nil
}
