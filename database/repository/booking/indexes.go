package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"velora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the bookings collection.
// The partial unique index on (professionalId, scheduledFor) over PENDING and
// ACCEPTED rows is the insert-if-absent backstop: two transactions racing to
// commit the exact same minute cannot both succeed, whatever each one read.
func (repo *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "professionalId", Value: 1}, {Key: "scheduledFor", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_active_slot").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{models.BookingPending, models.BookingAccepted}},
				}),
		},
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}, {Key: "scheduledFor", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("professional_window_idx"),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "scheduledFor", Value: -1}},
			Options: options.Index().SetName("client_history_idx"),
		},
	}

	_, err := repo.bookingColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
