package holdRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the bookingHolds collection.
// The TTL index is storage hygiene only: readers never trust a hold's
// presence, they check ExpiresAt themselves.
func (repo *MongoHoldRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("hold_ttl_idx"),
		},
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}, {Key: "scheduledFor", Value: 1}},
			Options: options.Index().SetName("professional_scheduled_idx"),
		},
	}

	_, err := repo.holdColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create hold indexes: %w", err)
	}
	return nil
}
