package entity

import (
	"time"

	"quotiza-connect/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoConfigurationDoc represents a shop's Quotiza settings in MongoDB
type MongoConfigurationDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Shop            string             `bson:"shop"`
	APIKey          string             `bson:"apiKey"`
	AccountID       string             `bson:"accountId"`
	ImportFrequency string             `bson:"importFrequency"`
	PriceAdjustment string             `bson:"priceAdjustment,omitempty"`
	Percentage      string             `bson:"percentage,omitempty"`
	Language        string             `bson:"language,omitempty"`
	NextRunAt       time.Time          `bson:"nextRunAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoConfigurationDoc) ToDomain() *domain.Configuration {
	return &domain.Configuration{
		ID:              d.ID.Hex(),
		Shop:            d.Shop,
		APIKey:          d.APIKey,
		AccountID:       d.AccountID,
		ImportFrequency: domain.ImportFrequency(d.ImportFrequency),
		PriceAdjustment: domain.PriceAdjustment(d.PriceAdjustment),
		Percentage:      d.Percentage,
		Language:        d.Language,
		NextRunAt:       d.NextRunAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// MongoConfigurationDocFromDomain converts a domain entity to a MongoDB document
func MongoConfigurationDocFromDomain(config *domain.Configuration) *MongoConfigurationDoc {
	doc := &MongoConfigurationDoc{
		Shop:            config.Shop,
		APIKey:          config.APIKey,
		AccountID:       config.AccountID,
		ImportFrequency: string(config.ImportFrequency),
		PriceAdjustment: string(config.PriceAdjustment),
		Percentage:      config.Percentage,
		Language:        config.Language,
		NextRunAt:       config.NextRunAt,
		CreatedAt:       config.CreatedAt,
		UpdatedAt:       config.UpdatedAt,
	}

	if config.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(config.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
