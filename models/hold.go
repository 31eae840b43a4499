package models

import "time"

// LocationSnapshot is the denormalized location state captured when a hold is
// created, so booking creation does not need to re-resolve the professional's
// location documents.
type LocationSnapshot struct {
	TimeZone      string  `bson:"timeZone" json:"timeZone"`
	Address       string  `bson:"address,omitempty" json:"address,omitempty"`
	Lat           float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng           float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	BufferMinutes int     `bson:"bufferMinutes" json:"bufferMinutes"`
}

// BookingHold is an ephemeral, exclusive claim that a single client is actively
// attempting to book a specific (professional, offering, scheduledFor,
// locationType) combination. A hold past ExpiresAt conveys no effect and must
// be treated as absent by every reader.
type BookingHold struct {
	ID             string           `bson:"id" json:"id"`
	ClientID       string           `bson:"clientId" json:"clientId"`
	ProfessionalID string           `bson:"professionalId" json:"professionalId"`
	OfferingID     string           `bson:"offeringId" json:"offeringId"`
	ScheduledFor   time.Time        `bson:"scheduledFor" json:"scheduledFor"` // UTC, minute-aligned
	LocationType   LocationType     `bson:"locationType" json:"locationType"`
	Location       LocationSnapshot `bson:"location" json:"location"`
	ExpiresAt      time.Time        `bson:"expiresAt" json:"expiresAt"`
	CreatedAt      time.Time        `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the hold is past its expiry at the given instant.
func (h BookingHold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// Matches reports whether the hold claims the same slot shape as the given
// booking parameters. Consumers re-validate these fields before acting on a
// hold; scheduledFor must match to the exact minute.
func (h BookingHold) Matches(professionalID, offeringID string, locationType LocationType, scheduledFor time.Time) bool {
	return h.ProfessionalID == professionalID &&
		h.OfferingID == offeringID &&
		h.LocationType == locationType &&
		h.ScheduledFor.Equal(scheduledFor)
}
