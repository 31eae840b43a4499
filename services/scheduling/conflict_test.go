package scheduling

import (
	"testing"
	"time"

	"velora/models"

	"github.com/stretchr/testify/assert"
)

func TestOverlapsIsSymmetric(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	pairs := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"nested", base, base.Add(2 * time.Hour), base.Add(30 * time.Minute), base.Add(time.Hour), true},
		{"partial", base, base.Add(time.Hour), base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"identical", base, base.Add(time.Hour), base, base.Add(time.Hour), true},
		{"touching", base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"disjoint", base, base.Add(time.Hour), base.Add(3 * time.Hour), base.Add(4 * time.Hour), false},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "overlap must be symmetric")
		})
	}
}

func TestHasConflictAppliesBuffersBothSides(t *testing.T) {
	// Existing booking 10:00-11:00 with a 15 minute trailing buffer blocks
	// the calendar until 11:15.
	existing := []models.Booking{{
		ScheduledFor:         time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		TotalDurationMinutes: 60,
		BufferMinutes:        15,
		Status:               models.BookingAccepted,
	}}

	// Candidate starting exactly at 11:15 touches but does not overlap.
	assert.False(t, HasConflict(time.Date(2026, 5, 1, 11, 15, 0, 0, time.UTC), 30, 0, existing))
	// One minute earlier collides with the existing buffer.
	assert.True(t, HasConflict(time.Date(2026, 5, 1, 11, 14, 0, 0, time.UTC), 30, 0, existing))
	// A candidate whose own buffer reaches into the existing booking
	// collides even though its service time would not.
	assert.True(t, HasConflict(time.Date(2026, 5, 1, 9, 15, 0, 0, time.UTC), 30, 30, existing))
	// Without the buffer the same candidate ends exactly at 09:45 and fits.
	assert.False(t, HasConflict(time.Date(2026, 5, 1, 9, 15, 0, 0, time.UTC), 30, 15, existing))
}

func TestHasConflictIgnoresCancelledOnly(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for _, status := range []models.BookingStatus{
		models.BookingPending, models.BookingAccepted, models.BookingWaitlist, models.BookingCompleted,
	} {
		existing := []models.Booking{{ScheduledFor: start, TotalDurationMinutes: 60, Status: status}}
		assert.True(t, HasConflict(start, 30, 0, existing), "%s rows occupy the calendar", status)
	}

	cancelled := []models.Booking{{ScheduledFor: start, TotalDurationMinutes: 60, Status: models.BookingCancelled}}
	assert.False(t, HasConflict(start, 30, 0, cancelled))
}

func TestQueryWindowCoversCandidate(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	from, to := QueryWindow(start, 60, 15)
	assert.True(t, from.Before(start))
	assert.True(t, to.After(start.Add(75*time.Minute)))
	// The floor keeps the window a full day wide even for short services.
	assert.True(t, start.Sub(from) >= 24*time.Hour)
}

func TestAlignToMinute(t *testing.T) {
	loc := time.FixedZone("plus2", 2*3600)
	raw := time.Date(2026, 5, 1, 12, 30, 59, 123456, loc)
	aligned := AlignToMinute(raw)
	assert.Equal(t, time.UTC, aligned.Location())
	assert.Zero(t, aligned.Second())
	assert.Zero(t, aligned.Nanosecond())
	assert.Equal(t, time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC), aligned)
}
