package bookingRepo

import (
	"context"
	"time"

	"velora/models"
)

// ConflictGuard re-checks a candidate interval against the bookings that
// exist at commit time. It runs inside the same transaction as the write, so
// a nil return means the write may proceed against exactly the rows it saw.
type ConflictGuard func(existing []models.Booking) error

// RescheduleGuard re-validates a reschedule against the current booking row
// and the rest of the calendar (the booking's own row is excluded).
type RescheduleGuard func(current *models.Booking, existing []models.Booking) error

// CancelGuard decides whether the current booking row may be cancelled.
type CancelGuard func(current *models.Booking) error

// PromotionPick selects the waitlisted booking to promote for a freed
// interval, or nil for no promotion.
type PromotionPick func(freed models.Booking, candidates []models.Booking) *models.Booking

// RescheduleUpdate carries the new schedule committed by a reschedule.
type RescheduleUpdate struct {
	ScheduledFor         time.Time
	TotalDurationMinutes int
	BufferMinutes        int
	LocationType         models.LocationType
	Address              string
	TimeZone             string
	TotalPrice           float64
}

// BookingRepository is the only component that writes booking rows. All
// read-then-write decisions happen inside one transaction through the *Tx
// methods; reads taken elsewhere are advisory only.
type BookingRepository interface {
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	ListForProfessionalInWindow(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error)
	ListForClient(ctx context.Context, clientID string, limit int64) ([]models.Booking, error)

	// UpdateStatusGuarded performs a compare-and-set status transition,
	// optionally stamping startedAt/finishedAt. It fails if the stored
	// status no longer equals from.
	UpdateStatusGuarded(ctx context.Context, bookingID string, from, to models.BookingStatus, startedAt, finishedAt *time.Time) (*models.Booking, error)

	// CreateFromHoldTx inserts the booking and deletes the consumed hold in
	// one transaction, after running guard over the professional's bookings
	// in the conflict window. If the hold row is already gone the whole
	// transaction fails with ErrHoldGone.
	CreateFromHoldTx(ctx context.Context, booking *models.Booking, holdID string, guard ConflictGuard) error

	// RescheduleTx moves a booking to a new slot and deletes the consumed
	// hold in one transaction.
	RescheduleTx(ctx context.Context, bookingID, holdID string, update RescheduleUpdate, guard RescheduleGuard) (*models.Booking, error)

	// CancelAndPromoteTx cancels a booking and, when pick is non-nil,
	// promotes the selected waitlisted booking in the same transaction.
	CancelAndPromoteTx(ctx context.Context, bookingID, reason string, guard CancelGuard, pick PromotionPick, promoteTo models.BookingStatus) (cancelled, promoted *models.Booking, err error)
}
