package pricing

import (
	"context"
	"fmt"
	"time"

	professionalRepo "velora/database/repository/professional"
	"velora/models"
)

// SettingsSource supplies last-minute settings snapshots. In production this
// is the redis-backed CachedSettingsSource; tests inject a stub.
type SettingsSource interface {
	Get(ctx context.Context, professionalID string) (*models.LastMinuteSettings, error)
}

// QuoteService computes time-sensitive pricing for candidate slots.
type QuoteService interface {
	QuoteLastMinutePrice(ctx context.Context, professionalID, offeringID string, scheduledFor time.Time, basePrice float64) (*PriceQuote, error)
}

// DefaultQuoteService is the production implementation.
type DefaultQuoteService struct {
	Professionals professionalRepo.ProfessionalRepository
	Settings      SettingsSource
	Now           func() time.Time
}

func (s *DefaultQuoteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// QuoteLastMinutePrice resolves the professional's timezone and settings and
// runs the discount engine. Timezone comes from the salon location when one
// exists, else the mobile one; a professional with no configured location is
// a configuration fault, not a silent UTC fallback.
func (s *DefaultQuoteService) QuoteLastMinutePrice(ctx context.Context, professionalID, offeringID string, scheduledFor time.Time, basePrice float64) (*PriceQuote, error) {
	professional, err := s.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve professional %s: %w", professionalID, err)
	}

	tz := ""
	if loc, ok := professional.LocationFor(models.LocationSalon); ok && loc.TimeZone != "" {
		tz = loc.TimeZone
	} else if loc, ok := professional.LocationFor(models.LocationMobile); ok && loc.TimeZone != "" {
		tz = loc.TimeZone
	}
	if tz == "" {
		return nil, fmt.Errorf("professional %s has no location timezone configured", professionalID)
	}

	settings, err := s.Settings.Get(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load last-minute settings for %s: %w", professionalID, err)
	}

	quote, err := ComputeQuote(*settings, offeringID, scheduledFor, basePrice, tz, s.now())
	if err != nil {
		return nil, err
	}
	quote.ProfessionalID = professionalID
	return &quote, nil
}
