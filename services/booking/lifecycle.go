package booking

import (
	"velora/models"
)

// legalTransitions is the single authority for booking status changes.
// WAITLIST leaves only through the promotion cascade; COMPLETED and
// CANCELLED are terminal.
var legalTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingAccepted, models.BookingCancelled},
	models.BookingAccepted:  {models.BookingCompleted, models.BookingCancelled},
	models.BookingWaitlist:  {models.BookingAccepted, models.BookingPending},
	models.BookingCompleted: {},
	models.BookingCancelled: {},
}

// CanTransition reports whether the state machine allows from → to.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InitialStatus is the status a booking created from a hold starts in,
// depending on the professional's auto-accept preference.
func InitialStatus(autoAccept bool) models.BookingStatus {
	if autoAccept {
		return models.BookingAccepted
	}
	return models.BookingPending
}

// CanCancel decides whether a booking may be cancelled right now. Only
// PENDING and ACCEPTED bookings qualify, and a session in progress blocks
// cancellation.
func CanCancel(b *models.Booking) error {
	if b.StartedAt != nil {
		return NewStateError(b.Status, "booking %s has a session in progress and cannot be cancelled", b.ID)
	}
	if !CanTransition(b.Status, models.BookingCancelled) {
		return NewStateError(b.Status, "booking %s cannot be cancelled from status %s", b.ID, b.Status)
	}
	return nil
}

// CanReschedule decides whether a booking may be moved to a new slot.
func CanReschedule(b *models.Booking) error {
	if b.StartedAt != nil {
		return NewStateError(b.Status, "booking %s has a session in progress and cannot be rescheduled", b.ID)
	}
	if b.Status != models.BookingPending && b.Status != models.BookingAccepted {
		return NewStateError(b.Status, "booking %s cannot be rescheduled from status %s", b.ID, b.Status)
	}
	return nil
}

// CanStart decides whether the session-in-progress marker may be set.
func CanStart(b *models.Booking) error {
	if b.Status != models.BookingAccepted {
		return NewStateError(b.Status, "booking %s must be accepted before it can start", b.ID)
	}
	if b.StartedAt != nil {
		return NewStateError(b.Status, "booking %s has already started", b.ID)
	}
	return nil
}

// CanFinish decides whether the session may be finished and the booking
// completed.
func CanFinish(b *models.Booking) error {
	if b.Status != models.BookingAccepted {
		return NewStateError(b.Status, "booking %s cannot be completed from status %s", b.ID, b.Status)
	}
	if b.StartedAt == nil {
		return NewStateError(b.Status, "booking %s has not started", b.ID)
	}
	return nil
}
