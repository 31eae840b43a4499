package models

import "time"

// BookingStatus is the closed set of lifecycle states a booking can be in.
// Transition rules live in services/booking; nothing else may invent a status.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingAccepted  BookingStatus = "ACCEPTED"
	BookingWaitlist  BookingStatus = "WAITLIST"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// BookingSource records how the booking entered the system.
type BookingSource string

const (
	SourceRequested BookingSource = "REQUESTED"
	SourceDiscovery BookingSource = "DISCOVERY"
	SourceAftercare BookingSource = "AFTERCARE"
)

// LocationType distinguishes where the appointment takes place.
type LocationType string

const (
	LocationSalon  LocationType = "SALON"
	LocationMobile LocationType = "MOBILE"
)

// Booking represents a confirmed or proposed appointment. Bookings are never
// physically deleted; cancellation is a terminal status, not a row removal.
type Booking struct {
	ID                   string        `bson:"id" json:"id"`
	ClientID             string        `bson:"clientId" json:"clientId"`
	ProfessionalID       string        `bson:"professionalId" json:"professionalId"`
	OfferingID           string        `bson:"offeringId" json:"offeringId"`
	ScheduledFor         time.Time     `bson:"scheduledFor" json:"scheduledFor"` // UTC, minute-aligned
	TotalDurationMinutes int           `bson:"totalDurationMinutes" json:"totalDurationMinutes"`
	BufferMinutes        int           `bson:"bufferMinutes" json:"bufferMinutes"`
	LocationType         LocationType  `bson:"locationType" json:"locationType"`
	Status               BookingStatus `bson:"status" json:"status"`
	Source               BookingSource `bson:"source" json:"source"`
	TotalPrice           float64       `bson:"totalPrice" json:"totalPrice"`
	StartedAt            *time.Time    `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	FinishedAt           *time.Time    `bson:"finishedAt,omitempty" json:"finishedAt,omitempty"`
	CancelReason         string        `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	Address              string        `bson:"address,omitempty" json:"address,omitempty"`
	TimeZone             string        `bson:"timeZone" json:"timeZone"` // location timezone snapshot
	CreatedAt            time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// End returns the instant at which the appointment itself ends (no buffer).
func (b Booking) End() time.Time {
	return b.ScheduledFor.Add(time.Duration(b.TotalDurationMinutes) * time.Minute)
}

// BlockedUntil returns the instant until which the slot is occupied,
// including the trailing buffer.
func (b Booking) BlockedUntil() time.Time {
	return b.ScheduledFor.Add(time.Duration(b.TotalDurationMinutes+b.BufferMinutes) * time.Minute)
}
