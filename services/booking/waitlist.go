package booking

import (
	"velora/models"
	"velora/services/scheduling"
)

// SelectPromotion picks the waitlisted booking to promote for a freed
// interval: the first candidate, in ScheduledFor ascending order, whose own
// interval (with buffer) overlaps the freed one. Earliest requested time
// wins; ties keep their stored order. A nil return means the cascade is a
// no-op: it never widens the search or promotes a non-overlapping candidate.
func SelectPromotion(freed models.Booking, candidates []models.Booking) *models.Booking {
	for i := range candidates {
		c := &candidates[i]
		if c.Status != models.BookingWaitlist {
			continue
		}
		if scheduling.Overlaps(freed.ScheduledFor, freed.BlockedUntil(), c.ScheduledFor, c.BlockedUntil()) {
			return c
		}
	}
	return nil
}
