package booking

import (
	"context"
	"fmt"
	"time"

	holdRepo "velora/database/repository/hold"
	"velora/models"
	"velora/services/scheduling"
	"velora/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HoldManager issues, validates and retires short-lived exclusive claims on a
// slot. Holds are advisory: creating one performs no conflict check (the
// caller does that immediately before), and two holds for the same slot may
// coexist. Mutual exclusion happens at booking-creation time.
type HoldManager struct {
	Repo holdRepo.HoldRepository
	Now  func() time.Time
}

func (m *HoldManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

// CreateHold persists a new hold carrying the denormalized location snapshot
// forward to booking creation. ScheduledFor is minute-aligned so the eventual
// booking compares exactly.
func (m *HoldManager) CreateHold(ctx context.Context, clientID, professionalID, offeringID string, scheduledFor time.Time, locationType models.LocationType, snapshot models.LocationSnapshot, ttl time.Duration) (*models.BookingHold, error) {
	now := m.now()
	hold := &models.BookingHold{
		ID:             uuid.New().String(),
		ClientID:       clientID,
		ProfessionalID: professionalID,
		OfferingID:     offeringID,
		ScheduledFor:   scheduling.AlignToMinute(scheduledFor),
		LocationType:   locationType,
		Location:       snapshot,
		ExpiresAt:      now.Add(ttl),
		CreatedAt:      now,
	}
	if err := m.Repo.Create(ctx, hold); err != nil {
		return nil, fmt.Errorf("failed to persist hold: %w", err)
	}
	return hold, nil
}

// ConsumeHold loads and validates a hold for the given client. A missing hold
// and a hold owned by someone else are indistinguishable to the caller, so
// hold existence never leaks across clients. The caller is responsible for
// deleting the hold inside the same transaction that uses its data.
func (m *HoldManager) ConsumeHold(ctx context.Context, holdID, clientID string) (*models.BookingHold, error) {
	hold, err := m.Repo.GetByID(ctx, holdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hold %s: %w", holdID, err)
	}
	if hold == nil || hold.ClientID != clientID {
		return nil, NewBookingError(CodeHoldNotFound, "hold not found")
	}
	if hold.Expired(m.now()) {
		return nil, NewBookingError(CodeHoldExpired, "hold has expired")
	}
	return hold, nil
}

// Discard removes a hold whose re-check failed so a retry cannot reuse it.
// Best effort: the TTL index reclaims anything missed here.
func (m *HoldManager) Discard(ctx context.Context, holdID string) {
	if err := m.Repo.Delete(ctx, holdID); err != nil {
		utils.GetLogger().Warn("failed to discard stale hold",
			zap.String("holdId", holdID),
			zap.Error(err),
		)
	}
}

// ReleaseHold invalidates a hold the client no longer wants. Releasing a hold
// that is already gone is not an error.
func (m *HoldManager) ReleaseHold(ctx context.Context, holdID, clientID string) error {
	hold, err := m.Repo.GetByID(ctx, holdID)
	if err != nil {
		return fmt.Errorf("failed to load hold %s: %w", holdID, err)
	}
	if hold == nil || hold.ClientID != clientID {
		return nil
	}
	return m.Repo.Delete(ctx, holdID)
}
