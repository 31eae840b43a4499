package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"velora/models"
	"velora/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrSlotTaken means the unique active-slot index rejected the insert: a
// concurrent transaction committed a booking for the exact same minute first.
var ErrSlotTaken = errors.New("slot already taken by a concurrent booking")

// CreateFromHoldTx re-reads the professional's calendar, runs the conflict
// guard, inserts the booking and deletes the consumed hold, all inside one
// mongo transaction. A hold whose re-check fails is provably stale, so after
// the abort it is discarded rather than left around for a retry to reuse.
func (repo *MongoBookingRepo) CreateFromHoldTx(ctx context.Context, booking *models.Booking, holdID string, guard ConflictGuard) error {
	stale := false
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		from, to := conflictWindow(booking.ScheduledFor, booking.TotalDurationMinutes+booking.BufferMinutes)
		existing, err := repo.findBookings(sc, repo.bookingColl, activeWindowFilter(booking.ProfessionalID, from, to), nil)
		if err != nil {
			return err
		}
		if err := guard(existing); err != nil {
			stale = true
			return err
		}

		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				stale = true
				return ErrSlotTaken
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}

		res, err := repo.holdColl.DeleteOne(sc, bson.M{"id": holdID})
		if err != nil {
			return fmt.Errorf("delete consumed hold failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return ErrHoldGone
		}
		return nil
	})
	if stale {
		repo.discardHold(ctx, holdID)
	}
	return err
}

// discardHold removes a hold that failed its re-check. Best effort: the TTL
// index reclaims anything missed here.
func (repo *MongoBookingRepo) discardHold(ctx context.Context, holdID string) {
	if _, err := repo.holdColl.DeleteOne(ctx, bson.M{"id": holdID}); err != nil {
		utils.GetLogger().Warn("failed to discard stale hold",
			zap.String("holdId", holdID),
			zap.Error(err),
		)
	}
}

// RescheduleTx moves a booking to the new slot described by update. The
// booking's own row is excluded from the calendar handed to the guard, and
// the consumed hold is deleted in the same transaction. The service layer
// discards the hold when the failure turns out to be a calendar conflict.
func (repo *MongoBookingRepo) RescheduleTx(ctx context.Context, bookingID, holdID string, update RescheduleUpdate, guard RescheduleGuard) (*models.Booking, error) {
	var updated *models.Booking
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var current models.Booking
		if err := repo.bookingColl.FindOne(sc, bson.M{"id": bookingID}).Decode(&current); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("error fetching booking %s: %w", bookingID, err)
		}

		from, to := conflictWindow(update.ScheduledFor, update.TotalDurationMinutes+update.BufferMinutes)
		existing, err := repo.findBookings(sc, repo.bookingColl, activeWindowFilter(current.ProfessionalID, from, to), nil)
		if err != nil {
			return err
		}
		others := existing[:0]
		for _, b := range existing {
			if b.ID != current.ID {
				others = append(others, b)
			}
		}
		if err := guard(&current, others); err != nil {
			return err
		}

		set := bson.M{
			"scheduledFor":         update.ScheduledFor,
			"totalDurationMinutes": update.TotalDurationMinutes,
			"bufferMinutes":        update.BufferMinutes,
			"locationType":         update.LocationType,
			"address":              update.Address,
			"timeZone":             update.TimeZone,
			"totalPrice":           update.TotalPrice,
			"updatedAt":            time.Now().UTC(),
		}
		if _, err := repo.bookingColl.UpdateOne(sc, bson.M{"id": bookingID}, bson.M{"$set": set}); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("reschedule update failed: %w", err)
		}

		res, err := repo.holdColl.DeleteOne(sc, bson.M{"id": holdID})
		if err != nil {
			return fmt.Errorf("delete consumed hold failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return ErrHoldGone
		}

		current.ScheduledFor = update.ScheduledFor
		current.TotalDurationMinutes = update.TotalDurationMinutes
		current.BufferMinutes = update.BufferMinutes
		current.LocationType = update.LocationType
		current.Address = update.Address
		current.TimeZone = update.TimeZone
		current.TotalPrice = update.TotalPrice
		updated = &current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelAndPromoteTx cancels a booking and, when pick selects one, promotes
// an overlapping waitlisted booking inside the same transaction.
func (repo *MongoBookingRepo) CancelAndPromoteTx(ctx context.Context, bookingID, reason string, guard CancelGuard, pick PromotionPick, promoteTo models.BookingStatus) (*models.Booking, *models.Booking, error) {
	var cancelled, promoted *models.Booking
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var current models.Booking
		if err := repo.bookingColl.FindOne(sc, bson.M{"id": bookingID}).Decode(&current); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("error fetching booking %s: %w", bookingID, err)
		}
		if err := guard(&current); err != nil {
			return err
		}

		now := time.Now().UTC()
		set := bson.M{"status": models.BookingCancelled, "cancelReason": reason, "updatedAt": now}
		if _, err := repo.bookingColl.UpdateOne(sc, bson.M{"id": bookingID}, bson.M{"$set": set}); err != nil {
			return fmt.Errorf("cancel update failed: %w", err)
		}
		current.Status = models.BookingCancelled
		current.CancelReason = reason
		cancelled = &current

		if pick == nil {
			return nil
		}

		from, to := conflictWindow(current.ScheduledFor, current.TotalDurationMinutes+current.BufferMinutes)
		filter := bson.M{
			"professionalId": current.ProfessionalID,
			"scheduledFor":   bson.M{"$gte": from, "$lt": to},
			"status":         models.BookingWaitlist,
		}
		candidates, err := repo.findBookings(sc, repo.bookingColl, filter, nil)
		if err != nil {
			return err
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].ScheduledFor.Before(candidates[j].ScheduledFor)
		})

		match := pick(current, candidates)
		if match == nil {
			return nil
		}

		promoteSet := bson.M{"status": promoteTo, "updatedAt": now}
		res, err := repo.bookingColl.UpdateOne(sc, bson.M{"id": match.ID, "status": models.BookingWaitlist}, bson.M{"$set": promoteSet})
		if err != nil {
			return fmt.Errorf("promotion update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStaleStatus
		}
		match.Status = promoteTo
		promoted = match
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return cancelled, promoted, nil
}

// conflictWindow bounds the calendar read for a candidate occupying
// combinedMin minutes. It is never tighter than twice the largest combined
// duration+buffer so no true conflict can fall outside the query.
func conflictWindow(start time.Time, combinedMin int) (time.Time, time.Time) {
	span := 2 * time.Duration(combinedMin) * time.Minute
	if span < 24*time.Hour {
		span = 24 * time.Hour
	}
	end := start.Add(time.Duration(combinedMin) * time.Minute)
	return start.Add(-span), end.Add(span)
}

func (repo *MongoBookingRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
