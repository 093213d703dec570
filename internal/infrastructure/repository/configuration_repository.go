package repository

import (
	"context"
	"fmt"
	"time"

	"quotiza-connect/internal/domain"
	"quotiza-connect/internal/infrastructure/repository/entity"
	"quotiza-connect/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfigurationRepository implements ConfigurationRepository using MongoDB.
// One document per shop, keyed by the shop domain.
type MongoConfigurationRepository struct {
	collection *mongo.Collection
}

// NewMongoConfigurationRepository creates a new MongoDB configuration repository
func NewMongoConfigurationRepository(db *mongo.Database) ports.ConfigurationRepository {
	return &MongoConfigurationRepository{
		collection: db.Collection("configurations"),
	}
}

// Upsert creates or replaces the configuration for config.Shop
func (r *MongoConfigurationRepository) Upsert(ctx context.Context, config *domain.Configuration) error {
	doc := entity.MongoConfigurationDocFromDomain(config)
	doc.UpdatedAt = time.Now()

	filter := bson.M{"shop": config.Shop}
	update := bson.M{
		"$set": bson.M{
			"apiKey":          doc.APIKey,
			"accountId":       doc.AccountID,
			"importFrequency": doc.ImportFrequency,
			"priceAdjustment": doc.PriceAdjustment,
			"percentage":      doc.Percentage,
			"language":        doc.Language,
			"nextRunAt":       doc.NextRunAt,
			"updatedAt":       doc.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"shop":      config.Shop,
			"createdAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert configuration: %w", err)
	}

	return nil
}

// GetByShop retrieves the configuration for a shop, nil if none exists
func (r *MongoConfigurationRepository) GetByShop(ctx context.Context, shop string) (*domain.Configuration, error) {
	var doc entity.MongoConfigurationDoc
	filter := bson.M{"shop": shop}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration: %w", err)
	}

	return doc.ToDomain(), nil
}

// ListDue returns configurations with an automatic frequency whose next run
// is at or before now
func (r *MongoConfigurationRepository) ListDue(ctx context.Context, now time.Time) ([]*domain.Configuration, error) {
	filter := bson.M{
		"importFrequency": bson.M{"$in": []string{
			string(domain.FrequencyHourly),
			string(domain.FrequencyDaily),
		}},
		"nextRunAt": bson.M{"$gt": time.Time{}, "$lte": now},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list due configurations: %w", err)
	}
	defer cursor.Close(ctx)

	var configs []*domain.Configuration
	for cursor.Next(ctx) {
		var doc entity.MongoConfigurationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode configuration: %w", err)
		}
		configs = append(configs, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate configurations: %w", err)
	}

	return configs, nil
}

// SetNextRunAt advances the durable schedule cursor for a shop
func (r *MongoConfigurationRepository) SetNextRunAt(ctx context.Context, shop string, next time.Time) error {
	filter := bson.M{"shop": shop}
	update := bson.M{"$set": bson.M{
		"nextRunAt": next,
		"updatedAt": time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set next run: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("configuration not found for shop %s", shop)
	}
	return nil
}

// DeleteByShop removes the configuration when the app is uninstalled
func (r *MongoConfigurationRepository) DeleteByShop(ctx context.Context, shop string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"shop": shop})
	if err != nil {
		return fmt.Errorf("failed to delete configuration: %w", err)
	}
	return nil
}
