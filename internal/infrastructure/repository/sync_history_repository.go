package repository

import (
	"context"
	"fmt"
	"time"

	"quotiza-connect/internal/domain"
	"quotiza-connect/internal/infrastructure/repository/entity"
	"quotiza-connect/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSyncHistoryRepository implements SyncHistoryRepository using MongoDB
type MongoSyncHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoSyncHistoryRepository creates a new MongoDB sync history repository
func NewMongoSyncHistoryRepository(db *mongo.Database) ports.SyncHistoryRepository {
	return &MongoSyncHistoryRepository{
		collection: db.Collection("sync_history"),
	}
}

// Create inserts a new record and fills in its ID
func (r *MongoSyncHistoryRepository) Create(ctx context.Context, record *domain.SyncHistoryRecord) error {
	doc := entity.MongoSyncHistoryDocFromDomain(record)
	if doc.Date.IsZero() {
		doc.Date = time.Now()
	}
	doc.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create sync history record: %w", err)
	}

	record.ID = doc.ID.Hex()
	return nil
}

// MarkSuccess closes an in_progress record with its outcome
func (r *MongoSyncHistoryRepository) MarkSuccess(ctx context.Context, id string, productsCount int, jobID string) error {
	return r.close(ctx, id, bson.M{
		"status":        string(domain.SyncSuccess),
		"productsCount": productsCount,
		"jobId":         jobID,
	})
}

// MarkError closes an in_progress record with the error message
func (r *MongoSyncHistoryRepository) MarkError(ctx context.Context, id string, message string) error {
	return r.close(ctx, id, bson.M{
		"status": string(domain.SyncError),
		"error":  message,
	})
}

func (r *MongoSyncHistoryRepository) close(ctx context.Context, id string, fields bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid record ID: %w", err)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update sync history record: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("sync history record not found: %s", id)
	}
	return nil
}

// ListRecent returns the most recent records for a shop, newest first
func (r *MongoSyncHistoryRepository) ListRecent(ctx context.Context, shop string, limit int) ([]*domain.SyncHistoryRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"shop": shop}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync history: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.SyncHistoryRecord
	for cursor.Next(ctx) {
		var doc entity.MongoSyncHistoryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode sync history record: %w", err)
		}
		records = append(records, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync history: %w", err)
	}

	return records, nil
}
