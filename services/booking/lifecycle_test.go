package booking

import (
	"testing"
	"time"

	"velora/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to models.BookingStatus }{
		{models.BookingPending, models.BookingAccepted},
		{models.BookingPending, models.BookingCancelled},
		{models.BookingAccepted, models.BookingCompleted},
		{models.BookingAccepted, models.BookingCancelled},
		{models.BookingWaitlist, models.BookingAccepted},
		{models.BookingWaitlist, models.BookingPending},
	}
	for _, tt := range legal {
		assert.True(t, CanTransition(tt.from, tt.to), "%s -> %s must be legal", tt.from, tt.to)
	}

	illegal := []struct{ from, to models.BookingStatus }{
		{models.BookingPending, models.BookingCompleted},
		{models.BookingWaitlist, models.BookingCancelled},
		{models.BookingCompleted, models.BookingCancelled},
		{models.BookingCancelled, models.BookingPending},
		{models.BookingCompleted, models.BookingAccepted},
	}
	for _, tt := range illegal {
		assert.False(t, CanTransition(tt.from, tt.to), "%s -> %s must be rejected", tt.from, tt.to)
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, models.BookingAccepted, InitialStatus(true))
	assert.Equal(t, models.BookingPending, InitialStatus(false))
}

func TestCanCancelBlocksStartedSessions(t *testing.T) {
	started := time.Now()
	b := &models.Booking{ID: "b1", Status: models.BookingAccepted, StartedAt: &started}
	err := CanCancel(b)
	assert.Equal(t, CodeInvalidState, CodeOf(err))

	b.StartedAt = nil
	assert.NoError(t, CanCancel(b))

	b.Status = models.BookingCompleted
	err = CanCancel(b)
	assert.Equal(t, CodeInvalidState, CodeOf(err))
}

func TestCanStartAndFinish(t *testing.T) {
	b := &models.Booking{ID: "b1", Status: models.BookingPending}
	assert.Error(t, CanStart(b))

	b.Status = models.BookingAccepted
	assert.NoError(t, CanStart(b))
	assert.Error(t, CanFinish(b), "finishing requires a started session")

	started := time.Now()
	b.StartedAt = &started
	assert.Error(t, CanStart(b), "a started session cannot start twice")
	assert.NoError(t, CanFinish(b))
}

func TestStateErrorCarriesStatus(t *testing.T) {
	err := CanReschedule(&models.Booking{ID: "b1", Status: models.BookingWaitlist})
	var be *BookingError
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, models.BookingWaitlist, be.Status)
}
