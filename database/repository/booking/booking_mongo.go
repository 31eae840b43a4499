package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"velora/database"
	"velora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel failures the transactional paths surface to the service layer.
var (
	// ErrHoldGone means the hold row vanished between validation and commit,
	// typically because a concurrent confirm consumed it first.
	ErrHoldGone = errors.New("booking hold no longer exists")
	// ErrStaleStatus means a guarded status transition found a different
	// stored status than expected.
	ErrStaleStatus = errors.New("booking status changed concurrently")
	// ErrNotFound means the booking row does not exist.
	ErrNotFound = errors.New("booking not found")
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	holdColl    *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo. The
// unique active-slot index is what makes concurrent confirms safe, so a
// failure to create it is fatal.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("velora")
	repo := &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		holdColl:    db.Collection("bookingHolds"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Fatalf("failed to create booking indexes: %v", err)
	}
	return repo
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// ListForProfessionalInWindow returns the professional's bookings whose
// scheduledFor falls inside [from, to). Cancelled rows are filtered out at
// the query since they never participate in conflict decisions.
func (repo *MongoBookingRepo) ListForProfessionalInWindow(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := activeWindowFilter(professionalID, from, to)
	return repo.findBookings(ctx, repo.bookingColl, filter, options.Find().SetSort(bson.D{{Key: "scheduledFor", Value: 1}}))
}

func (repo *MongoBookingRepo) ListForClient(ctx context.Context, clientID string, limit int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduledFor", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	return repo.findBookings(ctx, repo.bookingColl, bson.M{"clientId": clientID}, opts)
}

func (repo *MongoBookingRepo) UpdateStatusGuarded(ctx context.Context, bookingID string, from, to models.BookingStatus, startedAt, finishedAt *time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": to, "updatedAt": time.Now().UTC()}
	if startedAt != nil {
		set["startedAt"] = *startedAt
	}
	if finishedAt != nil {
		set["finishedAt"] = *finishedAt
	}

	filter := bson.M{"id": bookingID, "status": from}
	if startedAt != nil {
		// Stamping a session start also requires that no concurrent start
		// won the race first.
		filter["startedAt"] = nil
	}

	var updated models.Booking
	err := repo.bookingColl.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			if _, getErr := repo.GetByID(ctx, bookingID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrStaleStatus
		}
		return nil, fmt.Errorf("error updating booking %s status: %w", bookingID, err)
	}
	return &updated, nil
}

func activeWindowFilter(professionalID string, from, to time.Time) bson.M {
	return bson.M{
		"professionalId": professionalID,
		"scheduledFor":   bson.M{"$gte": from, "$lt": to},
		"status":         bson.M{"$ne": models.BookingCancelled},
	}
}

func (repo *MongoBookingRepo) findBookings(ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
