package entity

import (
	"time"

	"quotiza-connect/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoSyncHistoryDoc represents one sync attempt in MongoDB
type MongoSyncHistoryDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Shop          string             `bson:"shop"`
	Status        string             `bson:"status"`
	Date          time.Time          `bson:"date"`
	ProductsCount int                `bson:"productsCount,omitempty"`
	JobID         string             `bson:"jobId,omitempty"`
	Error         string             `bson:"error,omitempty"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSyncHistoryDoc) ToDomain() *domain.SyncHistoryRecord {
	return &domain.SyncHistoryRecord{
		ID:            d.ID.Hex(),
		Shop:          d.Shop,
		Status:        domain.SyncStatus(d.Status),
		Date:          d.Date,
		ProductsCount: d.ProductsCount,
		JobID:         d.JobID,
		Error:         d.Error,
	}
}

// MongoSyncHistoryDocFromDomain converts a domain entity to a MongoDB document
func MongoSyncHistoryDocFromDomain(record *domain.SyncHistoryRecord) *MongoSyncHistoryDoc {
	doc := &MongoSyncHistoryDoc{
		Shop:          record.Shop,
		Status:        string(record.Status),
		Date:          record.Date,
		ProductsCount: record.ProductsCount,
		JobID:         record.JobID,
		Error:         record.Error,
	}

	if record.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(record.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
