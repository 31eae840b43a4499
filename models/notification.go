package models

// BookingEventPayload is the task payload queued when a booking changes state.
// Delivery transport is out of band; losing a notification never rolls back a
// booking.
type BookingEventPayload struct {
	Event          string `json:"event"` // e.g. "booking.created", "booking.cancelled", "booking.promoted"
	BookingID      string `json:"bookingId"`
	ClientID       string `json:"clientId"`
	ProfessionalID string `json:"professionalId"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
}
