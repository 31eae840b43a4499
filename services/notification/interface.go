package notification

import (
	"context"

	"velora/models"
)

// TypeBookingEvent is the asynq task type for booking state-change events.
const TypeBookingEvent = "booking:event"

// NotificationService queues booking state-change events for delivery.
// Dispatch is fire-and-forget: a failed enqueue is logged by the caller and
// never rolls back a booking.
type NotificationService interface {
	EnqueueBookingEvent(ctx context.Context, payload models.BookingEventPayload) error
}
