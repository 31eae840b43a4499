package scheduling

import (
	"time"

	"velora/models"
)

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HasConflict reports whether a candidate slot collides with any existing
// non-cancelled booking once trailing buffers are applied to both sides.
// PENDING and WAITLIST rows still occupy the calendar; only CANCELLED rows
// are ignored.
func HasConflict(candidateStart time.Time, durationMin, bufferMin int, existing []models.Booking) bool {
	candidateEnd := candidateStart.Add(time.Duration(durationMin+bufferMin) * time.Minute)
	for _, b := range existing {
		if b.Status == models.BookingCancelled {
			continue
		}
		if Overlaps(candidateStart, candidateEnd, b.ScheduledFor, b.BlockedUntil()) {
			return true
		}
	}
	return false
}

// queryWindowFloor keeps the candidate search window from ever being tighter
// than twice the maximum realistic combined duration+buffer. Missing a true
// conflict is correctness-fatal; an over-wide window only costs a few rows.
const queryWindowFloor = 24 * time.Hour

// QueryWindow returns the [from, to) range a conflict query should cover for
// a candidate slot. This bounding is purely a performance optimization over
// scanning the professional's whole calendar.
func QueryWindow(candidateStart time.Time, durationMin, bufferMin int) (from, to time.Time) {
	span := 2 * time.Duration(durationMin+bufferMin) * time.Minute
	if span < queryWindowFloor {
		span = queryWindowFloor
	}
	end := candidateStart.Add(time.Duration(durationMin+bufferMin) * time.Minute)
	return candidateStart.Add(-span), end.Add(span)
}

// AlignToMinute truncates an instant to the whole minute. Every scheduledFor
// written by this core is minute-aligned so holds and bookings compare exactly.
func AlignToMinute(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}
