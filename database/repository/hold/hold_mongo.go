package holdRepo

import (
	"context"
	"fmt"
	"time"

	"velora/database"
	"velora/models"
	"velora/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoHoldRepo implements HoldRepository using MongoDB.
type MongoHoldRepo struct {
	holdColl *mongo.Collection
}

// NewMongoHoldRepo constructs a new instance of MongoHoldRepo.
func NewMongoHoldRepo() HoldRepository {
	db := database.MongoClient.Database("velora")
	repo := &MongoHoldRepo{
		holdColl: db.Collection("bookingHolds"),
	}
	if err := repo.ensureIndexes(); err != nil {
		// The TTL index is hygiene only; the sweeper and expiry checks cover
		// for it.
		utils.GetLogger().Warn("failed to create hold indexes", zap.Error(err))
	}
	return repo
}

func (repo *MongoHoldRepo) Create(ctx context.Context, hold *models.BookingHold) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.holdColl.InsertOne(ctx, hold); err != nil {
		return fmt.Errorf("error creating booking hold: %w", err)
	}
	return nil
}

func (repo *MongoHoldRepo) GetByID(ctx context.Context, holdID string) (*models.BookingHold, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var hold models.BookingHold
	filter := bson.M{"id": holdID}
	if err := repo.holdColl.FindOne(ctx, filter).Decode(&hold); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching hold %s: %w", holdID, err)
	}
	return &hold, nil
}

func (repo *MongoHoldRepo) Delete(ctx context.Context, holdID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.holdColl.DeleteOne(ctx, bson.M{"id": holdID}); err != nil {
		return fmt.Errorf("error deleting hold %s: %w", holdID, err)
	}
	return nil
}

func (repo *MongoHoldRepo) DeleteExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := repo.holdColl.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": time.Now().UTC()}})
	if err != nil {
		return 0, fmt.Errorf("error sweeping expired holds: %w", err)
	}
	return res.DeletedCount, nil
}
