package professionalRepo

import (
	"context"

	"velora/models"
)

// ProfessionalRepository provides the scheduling-relevant views of
// professionals and their offerings. Everything else about a professional
// (profile, portfolio, verification) belongs to the surrounding system.
type ProfessionalRepository interface {
	GetByID(ctx context.Context, professionalID string) (*models.Professional, error)
	GetOffering(ctx context.Context, offeringID string) (*models.Offering, error)
	GetLastMinuteSettings(ctx context.Context, professionalID string) (*models.LastMinuteSettings, error)
}
