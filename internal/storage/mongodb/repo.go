// Package mongodb implements a MongoDB-backed storage.Repository.
//
// Documents are written either by unordered InsertMany or by an unordered
// BulkWrite of natural-key upserts whose update documents split fields into
// $set (last-write-wins) and $setOnInsert (first-write-wins, ingested_at
// only).
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mongoetl/internal/record"
)

// indexName identifies the unique compound index over the natural key.
const indexName = "uniq_admission"

// Config holds MongoDB repository configuration.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// Repository is a Mongo-backed implementation of storage.Repository.
type Repository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewRepository connects to MongoDB and binds to the configured collection.
func NewRepository(ctx context.Context, cfg Config) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	return &Repository{client: client, coll: coll}, nil
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// BulkInsert writes docs with unordered semantics so one duplicate-key
// violation does not block the rest of the batch. On a bulk-write error
// the failed-operation count is returned as this batch's contribution, a
// lower bound on failures rather than a precise inserted count.
func (r *Repository) BulkInsert(ctx context.Context, docs []*record.Admission) int64 {
	if len(docs) == 0 {
		return 0
	}
	rows := make([]interface{}, len(docs))
	for i, d := range docs {
		rows[i] = d
	}
	res, err := r.coll.InsertMany(ctx, rows, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) {
			log.Printf("ERROR: bulk write error (insert): %s", describeBulkError(bwe))
			return int64(len(bwe.WriteErrors))
		}
		log.Printf("ERROR: bulk write error (insert): %v", err)
		return 0
	}
	return int64(len(res.InsertedIDs))
}

// BulkUpsert issues one upsert per document, filtered on the five
// natural-key fields, and returns the sum of newly-created and modified
// documents. Operations are unordered. A bulk-write error makes the whole
// batch count as zero, a deliberate undercount.
func (r *Repository) BulkUpsert(ctx context.Context, docs []*record.Admission) int64 {
	if len(docs) == 0 {
		return 0
	}
	models := make([]mongo.WriteModel, len(docs))
	for i, d := range docs {
		models[i] = upsertModel(d)
	}
	res, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) {
			log.Printf("ERROR: bulk write error (upsert): %s", describeBulkError(bwe))
			return 0
		}
		log.Printf("ERROR: bulk write error (upsert): %v", err)
		return 0
	}
	return res.UpsertedCount + res.ModifiedCount
}

// EnsureNaturalKeyIndex creates the unique compound index over the natural
// key. Creating an index that already exists with the same specification
// is a server-side no-op; any other failure is returned so the caller can
// abort before writing without the constraint.
func (r *Repository) EnsureNaturalKeyIndex(ctx context.Context) error {
	name, err := r.coll.Indexes().CreateOne(ctx, naturalKeyIndex())
	if err != nil {
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	log.Printf("ensured unique index: %s", name)
	return nil
}

// naturalKeyIndex is the unique compound index specification over the
// ordered natural-key tuple.
func naturalKeyIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: 1},
			{Key: "gender", Value: 1},
			{Key: "blood_type", Value: 1},
			{Key: "date_of_admission", Value: 1},
			{Key: "hospital", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName(indexName),
	}
}

// describeBulkError renders a BulkWriteException compactly: the failed-op
// count plus the first per-op error, which is usually enough to diagnose a
// batch without dumping every operation.
func describeBulkError(bwe mongo.BulkWriteException) string {
	if len(bwe.WriteErrors) == 0 {
		if bwe.WriteConcernError != nil {
			return fmt.Sprintf("write concern: %s", bwe.WriteConcernError.Message)
		}
		return bwe.Error()
	}
	first := bwe.WriteErrors[0]
	return fmt.Sprintf("%d failed ops; first: index=%d code=%d: %s",
		len(bwe.WriteErrors), first.Index, first.Code, first.Message)
}
