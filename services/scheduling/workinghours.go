package scheduling

import (
	"errors"
	"fmt"
	"time"

	"velora/models"
)

// Working-hours failures are split so callers can map them onto the right
// error class: a malformed window is the professional's configuration at
// fault, a closed day is an ordinary availability miss.
var (
	ErrDayNotBookable  = errors.New("the professional does not accept bookings on this day")
	ErrOutsideHours    = errors.New("the requested time falls outside working hours")
	ErrCrossesMidnight = errors.New("the appointment must not cross local midnight")
	ErrMalformedWindow = errors.New("the professional's working hours for this day are malformed")
)

// ValidateWorkingHours decides whether a proposed [startUTC, endUTC) interval
// is legal under the location's weekly schedule, expressed in the location's
// local time. It is a pure decision function with no side effects and must be
// re-run at every write path that commits a schedule.
func ValidateWorkingHours(startUTC, endUTC time.Time, hours models.WeekSchedule, tz string) error {
	loc, err := LoadZone(tz)
	if err != nil {
		return err
	}

	localStart := startUTC.In(loc)
	localEnd := endUTC.In(loc)

	rule := hours.Day(localStart.Weekday())
	if !rule.Enabled {
		return ErrDayNotBookable
	}

	windowStart, windowEnd, err := rule.Window()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedWindow, err)
	}

	if localEnd.Weekday() != localStart.Weekday() {
		return ErrCrossesMidnight
	}

	startMinutes := localStart.Hour()*60 + localStart.Minute()
	endMinutes := localEnd.Hour()*60 + localEnd.Minute()
	if startMinutes < windowStart || endMinutes > windowEnd {
		return ErrOutsideHours
	}
	return nil
}
