package holdRepo

import (
	"context"

	"velora/models"
)

// HoldRepository persists booking holds. Holds are advisory: two holds for
// the same slot may coexist, and exclusivity is enforced at booking-creation
// time, not here.
type HoldRepository interface {
	Create(ctx context.Context, hold *models.BookingHold) error
	GetByID(ctx context.Context, holdID string) (*models.BookingHold, error)
	Delete(ctx context.Context, holdID string) error
	// DeleteExpired removes holds whose expiry has passed. This is storage
	// hygiene only; every reader re-checks ExpiresAt regardless.
	DeleteExpired(ctx context.Context) (int64, error)
}
