package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "velora/database/repository/booking"
	professionalRepo "velora/database/repository/professional"
	"velora/models"
	"velora/services/notification"
	"velora/services/scheduling"
	"velora/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultHoldTTL is the hold lifetime used when none is configured.
const DefaultHoldTTL = 10 * time.Minute

// DefaultBookingService implements BookingService. All calendar writes go
// through the repository's transactional methods; the pre-checks done here
// are advisory and repeated inside the transaction guards.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	Holds         *HoldManager
	Professionals professionalRepo.ProfessionalRepository
	Notifier      notification.NotificationService
	HoldTTL       time.Duration
	Now           func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *DefaultBookingService) holdTTL() time.Duration {
	if s.HoldTTL > 0 {
		return s.HoldTTL
	}
	return DefaultHoldTTL
}

// resolveBookable loads the professional, offering and location behind a slot
// request and checks they can be booked together. mismatchCode is the error
// code used when the offering no longer lines up with the request: VALIDATION
// for fresh requests, HOLD_MISMATCH when confirming a previously issued hold.
func (s *DefaultBookingService) resolveBookable(ctx context.Context, professionalID, offeringID string, locationType models.LocationType, mismatchCode ErrorCode) (*models.Professional, *models.Offering, models.ProfessionalLocation, error) {
	var loc models.ProfessionalLocation

	professional, err := s.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		switch {
		case errors.Is(err, professionalRepo.ErrNotFound):
			return nil, nil, loc, NewBookingError(CodeNotFound, "professional %s not found", professionalID)
		case errors.Is(err, professionalRepo.ErrInvalidConfig):
			return nil, nil, loc, NewBookingError(CodeProfessionalConfig, "%v", err)
		default:
			return nil, nil, loc, fmt.Errorf("failed to load professional %s: %w", professionalID, err)
		}
	}

	offering, err := s.Professionals.GetOffering(ctx, offeringID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, nil, loc, NewBookingError(CodeNotFound, "offering %s not found", offeringID)
		}
		return nil, nil, loc, fmt.Errorf("failed to load offering %s: %w", offeringID, err)
	}
	if offering.ProfessionalID != professionalID {
		return nil, nil, loc, NewBookingError(mismatchCode, "offering %s does not belong to professional %s", offeringID, professionalID)
	}
	if !offering.IsActive {
		return nil, nil, loc, NewBookingError(mismatchCode, "offering %s is no longer active", offeringID)
	}
	if !offering.SupportsLocation(locationType) {
		return nil, nil, loc, NewBookingError(mismatchCode, "offering %s is not available at %s", offeringID, locationType)
	}

	loc, ok := professional.LocationFor(locationType)
	if !ok {
		return nil, nil, loc, NewBookingError(CodeProfessionalConfig, "professional %s has no %s location configured", professionalID, locationType)
	}
	if loc.TimeZone == "" {
		return nil, nil, loc, NewBookingError(CodeProfessionalConfig, "professional %s has no timezone for %s bookings", professionalID, locationType)
	}
	if !loc.HoursSet {
		return nil, nil, loc, NewBookingError(CodeProfessionalConfig, "professional %s has no working hours for %s bookings", professionalID, locationType)
	}

	return professional, offering, loc, nil
}

// checkWorkingHours validates the interval against the professional's hours,
// translating scheduling failures into caller-facing codes.
func checkWorkingHours(start, end time.Time, hours models.WeekSchedule, tz string) error {
	err := scheduling.ValidateWorkingHours(start, end, hours, tz)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, scheduling.ErrDayNotBookable):
		return NewBookingError(CodeOpeningNotAvailable, "the professional does not take bookings on that day")
	case errors.Is(err, scheduling.ErrOutsideHours):
		return NewBookingError(CodeWorkingHoursViolation, "the appointment falls outside the professional's working hours")
	case errors.Is(err, scheduling.ErrCrossesMidnight):
		return NewBookingError(CodeWorkingHoursViolation, "the appointment would run past midnight at the professional's location")
	default:
		return NewBookingError(CodeProfessionalConfig, "working hours could not be evaluated: %v", err)
	}
}

// ValidateAndHold checks a requested slot end to end (offering, calendar,
// working hours) and, if everything passes, issues a hold claiming it.
func (s *DefaultBookingService) ValidateAndHold(ctx context.Context, req HoldRequest) (*models.BookingHold, error) {
	scheduledFor := scheduling.AlignToMinute(req.ScheduledFor)
	if !scheduledFor.After(s.now()) {
		return nil, NewBookingError(CodeValidation, "scheduledFor must be in the future")
	}

	_, offering, loc, err := s.resolveBookable(ctx, req.ProfessionalID, req.OfferingID, req.LocationType, CodeValidation)
	if err != nil {
		return nil, err
	}

	_, durationMin := offering.PriceAndDuration(req.LocationType)
	if durationMin <= 0 {
		return nil, NewBookingError(CodeValidation, "offering %s has no duration for %s", req.OfferingID, req.LocationType)
	}

	from, to := scheduling.QueryWindow(scheduledFor, durationMin, loc.BufferMinutes)
	existing, err := s.Repo.ListForProfessionalInWindow(ctx, req.ProfessionalID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar: %w", err)
	}
	if scheduling.HasConflict(scheduledFor, durationMin, loc.BufferMinutes, existing) {
		return nil, NewBookingError(CodeTimeNotAvailable, "the requested time is no longer available")
	}

	end := scheduledFor.Add(time.Duration(durationMin) * time.Minute)
	if err := checkWorkingHours(scheduledFor, end, loc.Hours, loc.TimeZone); err != nil {
		return nil, err
	}

	snapshot := models.LocationSnapshot{
		TimeZone:      loc.TimeZone,
		Address:       loc.Address,
		Lat:           loc.Lat,
		Lng:           loc.Lng,
		BufferMinutes: loc.BufferMinutes,
	}
	return s.Holds.CreateHold(ctx, req.ClientID, req.ProfessionalID, req.OfferingID, scheduledFor, req.LocationType, snapshot, s.holdTTL())
}

// ReleaseHold gives a claimed slot back without booking it.
func (s *DefaultBookingService) ReleaseHold(ctx context.Context, clientID, holdID string) error {
	return s.Holds.ReleaseHold(ctx, holdID, clientID)
}

// CreateBookingFromHold confirms a held slot into a booking. Price and
// duration are recomputed from the current offering at confirm time; the
// location snapshot travels with the hold. The hold is deleted in the same
// transaction that inserts the booking, so one hold yields at most one
// booking no matter how many confirms race.
func (s *DefaultBookingService) CreateBookingFromHold(ctx context.Context, clientID, holdID string, source models.BookingSource) (*models.Booking, error) {
	hold, err := s.Holds.ConsumeHold(ctx, holdID, clientID)
	if err != nil {
		return nil, err
	}

	professional, offering, loc, err := s.resolveBookable(ctx, hold.ProfessionalID, hold.OfferingID, hold.LocationType, CodeHoldMismatch)
	if err != nil {
		return nil, err
	}

	price, durationMin := offering.PriceAndDuration(hold.LocationType)
	if durationMin <= 0 {
		return nil, NewBookingError(CodeHoldMismatch, "offering %s has no duration for %s", hold.OfferingID, hold.LocationType)
	}

	end := hold.ScheduledFor.Add(time.Duration(durationMin) * time.Minute)
	if err := checkWorkingHours(hold.ScheduledFor, end, loc.Hours, hold.Location.TimeZone); err != nil {
		return nil, err
	}

	if source == "" {
		source = models.SourceRequested
	}
	now := s.now()
	booking := &models.Booking{
		ID:                   uuid.New().String(),
		ClientID:             clientID,
		ProfessionalID:       hold.ProfessionalID,
		OfferingID:           hold.OfferingID,
		ScheduledFor:         hold.ScheduledFor,
		TotalDurationMinutes: durationMin,
		BufferMinutes:        hold.Location.BufferMinutes,
		LocationType:         hold.LocationType,
		Status:               InitialStatus(professional.AutoAcceptBookings),
		Source:               source,
		TotalPrice:           price,
		Address:              hold.Location.Address,
		TimeZone:             hold.Location.TimeZone,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	guard := func(existing []models.Booking) error {
		if scheduling.HasConflict(booking.ScheduledFor, durationMin, booking.BufferMinutes, existing) {
			return NewBookingError(CodeTimeNotAvailable, "the held time was taken before the booking was confirmed")
		}
		return nil
	}
	if err := s.Repo.CreateFromHoldTx(ctx, booking, holdID, guard); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrHoldGone):
			return nil, NewBookingError(CodeHoldNotFound, "hold not found")
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			return nil, NewBookingError(CodeTimeNotAvailable, "the held time was taken before the booking was confirmed")
		default:
			return nil, err
		}
	}

	s.notify(ctx, "booking.created", booking, "")
	return booking, nil
}

// RescheduleBooking moves an existing booking to a slot the client has
// already validated and held. The hold must target the same professional and
// offering as the booking being moved.
func (s *DefaultBookingService) RescheduleBooking(ctx context.Context, clientID, bookingID, holdID string, locationType models.LocationType) (*models.Booking, error) {
	hold, err := s.Holds.ConsumeHold(ctx, holdID, clientID)
	if err != nil {
		return nil, err
	}

	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewBookingError(CodeNotFound, "booking %s not found", bookingID)
		}
		return nil, err
	}
	if current.ClientID != clientID {
		return nil, NewBookingError(CodeNotFound, "booking %s not found", bookingID)
	}
	if !hold.Matches(current.ProfessionalID, current.OfferingID, locationType, hold.ScheduledFor) {
		return nil, NewBookingError(CodeHoldMismatch, "hold does not match the booking being rescheduled")
	}
	if err := CanReschedule(current); err != nil {
		return nil, err
	}

	_, offering, loc, err := s.resolveBookable(ctx, current.ProfessionalID, current.OfferingID, locationType, CodeHoldMismatch)
	if err != nil {
		return nil, err
	}
	price, durationMin := offering.PriceAndDuration(locationType)
	if durationMin <= 0 {
		return nil, NewBookingError(CodeHoldMismatch, "offering %s has no duration for %s", current.OfferingID, locationType)
	}

	end := hold.ScheduledFor.Add(time.Duration(durationMin) * time.Minute)
	if err := checkWorkingHours(hold.ScheduledFor, end, loc.Hours, hold.Location.TimeZone); err != nil {
		return nil, err
	}

	update := bookingRepo.RescheduleUpdate{
		ScheduledFor:         hold.ScheduledFor,
		TotalDurationMinutes: durationMin,
		BufferMinutes:        hold.Location.BufferMinutes,
		LocationType:         locationType,
		Address:              hold.Location.Address,
		TimeZone:             hold.Location.TimeZone,
		TotalPrice:           price,
	}
	guard := func(cur *models.Booking, existing []models.Booking) error {
		if cur.ClientID != clientID {
			return NewBookingError(CodeNotFound, "booking %s not found", bookingID)
		}
		if err := CanReschedule(cur); err != nil {
			return err
		}
		if scheduling.HasConflict(update.ScheduledFor, durationMin, update.BufferMinutes, existing) {
			return NewBookingError(CodeTimeNotAvailable, "the held time was taken before the reschedule was confirmed")
		}
		return nil
	}

	moved, err := s.Repo.RescheduleTx(ctx, bookingID, holdID, update, guard)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrHoldGone):
			return nil, NewBookingError(CodeHoldNotFound, "hold not found")
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			err = NewBookingError(CodeTimeNotAvailable, "the held time was taken before the reschedule was confirmed")
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, NewBookingError(CodeNotFound, "booking %s not found", bookingID)
		}
		// A hold that lost its slot must not fund a retry.
		if IsCode(err, CodeTimeNotAvailable) {
			s.Holds.Discard(ctx, holdID)
		}
		return nil, err
	}

	s.notify(ctx, "booking.rescheduled", moved, "")
	return moved, nil
}

// CancelBooking cancels a booking on behalf of its professional and, when
// promoteWaitlist is set, promotes the earliest overlapping waitlisted
// booking into the freed interval in the same transaction. The promoted
// booking enters PENDING or ACCEPTED according to the professional's
// auto-accept preference, exactly as a fresh booking would.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, professionalID, bookingID, reason string, promoteWaitlist bool) (*CancelResult, error) {
	professional, err := s.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		switch {
		case errors.Is(err, professionalRepo.ErrNotFound):
			return nil, NewBookingError(CodeNotFound, "professional %s not found", professionalID)
		case errors.Is(err, professionalRepo.ErrInvalidConfig):
			return nil, NewBookingError(CodeProfessionalConfig, "%v", err)
		default:
			return nil, fmt.Errorf("failed to load professional %s: %w", professionalID, err)
		}
	}

	guard := func(cur *models.Booking) error {
		if cur.ProfessionalID != professionalID {
			return NewBookingError(CodeNotFound, "booking %s not found", bookingID)
		}
		return CanCancel(cur)
	}
	var pick bookingRepo.PromotionPick
	if promoteWaitlist {
		pick = SelectPromotion
	}

	cancelled, promoted, err := s.Repo.CancelAndPromoteTx(ctx, bookingID, reason, guard, pick, InitialStatus(professional.AutoAcceptBookings))
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewBookingError(CodeNotFound, "booking %s not found", bookingID)
		}
		return nil, err
	}

	s.notify(ctx, "booking.cancelled", cancelled, reason)
	if promoted != nil {
		s.notify(ctx, "booking.promoted", promoted, "")
	}
	return &CancelResult{Booking: cancelled, Promoted: promoted}, nil
}

// AcceptBooking transitions a pending booking to accepted.
func (s *DefaultBookingService) AcceptBooking(ctx context.Context, professionalID, bookingID string) (*models.Booking, error) {
	updated, err := s.transition(ctx, professionalID, bookingID, models.BookingPending, models.BookingAccepted, nil, nil, func(b *models.Booking) error {
		if !CanTransition(b.Status, models.BookingAccepted) || b.Status != models.BookingPending {
			return NewStateError(b.Status, "booking %s cannot be accepted from status %s", b.ID, b.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "booking.accepted", updated, "")
	return updated, nil
}

// StartBooking stamps the session-in-progress marker on an accepted booking.
// Starting does not change the status; it blocks cancellation and reschedule.
func (s *DefaultBookingService) StartBooking(ctx context.Context, professionalID, bookingID string) (*models.Booking, error) {
	now := s.now()
	updated, err := s.transition(ctx, professionalID, bookingID, models.BookingAccepted, models.BookingAccepted, &now, nil, CanStart)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "booking.started", updated, "")
	return updated, nil
}

// FinishBooking completes a started booking.
func (s *DefaultBookingService) FinishBooking(ctx context.Context, professionalID, bookingID string) (*models.Booking, error) {
	now := s.now()
	updated, err := s.transition(ctx, professionalID, bookingID, models.BookingAccepted, models.BookingCompleted, nil, &now, CanFinish)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "booking.completed", updated, "")
	return updated, nil
}

// transition runs a guarded status change owned by the given professional.
// The check runs on a fresh read; the repository's compare-and-set repeats
// the from-status comparison at write time so a concurrent change loses.
func (s *DefaultBookingService) transition(ctx context.Context, professionalID, bookingID string, from, to models.BookingStatus, startedAt, finishedAt *time.Time, check func(*models.Booking) error) (*models.Booking, error) {
	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewBookingError(CodeNotFound, "booking %s not found", bookingID)
		}
		return nil, err
	}
	if current.ProfessionalID != professionalID {
		return nil, NewBookingError(CodeNotFound, "booking %s not found", bookingID)
	}
	if err := check(current); err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateStatusGuarded(ctx, bookingID, from, to, startedAt, finishedAt)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStaleStatus):
			return nil, NewStateError(current.Status, "booking %s changed concurrently, retry", bookingID)
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, NewBookingError(CodeNotFound, "booking %s not found", bookingID)
		default:
			return nil, err
		}
	}
	return updated, nil
}

// GetBooking fetches a booking by id.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewBookingError(CodeNotFound, "booking %s not found", bookingID)
		}
		return nil, err
	}
	return b, nil
}

// ListClientBookings returns the client's bookings, newest scheduled first.
func (s *DefaultBookingService) ListClientBookings(ctx context.Context, clientID string, limit int64) ([]models.Booking, error) {
	return s.Repo.ListForClient(ctx, clientID, limit)
}

// ListProfessionalBookings returns the professional's calendar over [from, to),
// scheduled time ascending. Cancelled bookings are excluded.
func (s *DefaultBookingService) ListProfessionalBookings(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error) {
	if !to.After(from) {
		return nil, NewBookingError(CodeValidation, "calendar window end must be after start")
	}
	return s.Repo.ListForProfessionalInWindow(ctx, professionalID, from, to)
}

// notify queues a state-change event. Delivery is best effort; a queue
// failure is logged and never surfaced to the caller.
func (s *DefaultBookingService) notify(ctx context.Context, event string, b *models.Booking, reason string) {
	if s.Notifier == nil || b == nil {
		return
	}
	payload := models.BookingEventPayload{
		Event:          event,
		BookingID:      b.ID,
		ClientID:       b.ClientID,
		ProfessionalID: b.ProfessionalID,
		Status:         string(b.Status),
		Reason:         reason,
	}
	if err := s.Notifier.EnqueueBookingEvent(ctx, payload); err != nil {
		utils.GetLogger().Warn("Failed to enqueue booking event",
			zap.String("event", event),
			zap.String("bookingID", b.ID),
			zap.Error(err))
	}
}
