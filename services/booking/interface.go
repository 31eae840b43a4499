package booking

import (
	"context"
	"time"

	"velora/models"
)

// HoldRequest carries the parameters of a slot-claim attempt.
type HoldRequest struct {
	ClientID       string              `json:"clientId"`
	ProfessionalID string              `json:"professionalId"`
	OfferingID     string              `json:"offeringId"`
	LocationType   models.LocationType `json:"locationType"`
	ScheduledFor   time.Time           `json:"scheduledFor"`
}

// CancelResult reports a cancellation and the waitlisted booking promoted
// into the freed interval, if any.
type CancelResult struct {
	Booking  *models.Booking `json:"booking"`
	Promoted *models.Booking `json:"promotedBooking,omitempty"`
}

// BookingService is the scheduling core's interface to the surrounding
// request handlers. Identifiers are assumed validated upstream.
type BookingService interface {
	ValidateAndHold(ctx context.Context, req HoldRequest) (*models.BookingHold, error)
	ReleaseHold(ctx context.Context, clientID, holdID string) error
	CreateBookingFromHold(ctx context.Context, clientID, holdID string, source models.BookingSource) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, clientID, bookingID, holdID string, locationType models.LocationType) (*models.Booking, error)
	CancelBooking(ctx context.Context, professionalID, bookingID, reason string, promoteWaitlist bool) (*CancelResult, error)
	AcceptBooking(ctx context.Context, professionalID, bookingID string) (*models.Booking, error)
	StartBooking(ctx context.Context, professionalID, bookingID string) (*models.Booking, error)
	FinishBooking(ctx context.Context, professionalID, bookingID string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListClientBookings(ctx context.Context, clientID string, limit int64) ([]models.Booking, error)
	ListProfessionalBookings(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error)
}
