package scheduling

import (
	"fmt"
	"time"
)

// ZonedParts holds the wall-clock reading of an instant in some timezone.
type ZonedParts struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

const (
	// zonedToUTCMaxRounds bounds the fixed-point iteration in ZonedTimeToUTC.
	// Six rounds are enough for every real IANA zone.
	zonedToUTCMaxRounds = 6
	// zonedToUTCTolerance is the convergence threshold for the iteration.
	zonedToUTCTolerance = 500 * time.Millisecond
)

// LoadZone resolves an IANA zone identifier. An unknown zone is a hard failure
// for this engine; callers decide their own fallback policy.
func LoadZone(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, fmt.Errorf("timezone is empty")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// ZonedPartsOf returns the wall-clock parts of a UTC instant in tz.
func ZonedPartsOf(instant time.Time, tz string) (ZonedParts, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return ZonedParts{}, err
	}
	local := instant.In(loc)
	parts := ZonedParts{
		Year:   local.Year(),
		Month:  int(local.Month()),
		Day:    local.Day(),
		Hour:   local.Hour(),
		Minute: local.Minute(),
		Second: local.Second(),
	}
	return normalizeHour24(parts), nil
}

// normalizeHour24 rolls a reported hour of 24 over to hour 0 of the next
// calendar day. Some locale formatters emit "24:xx" for midnight; the engine
// accepts it on input too.
func normalizeHour24(p ZonedParts) ZonedParts {
	if p.Hour != 24 {
		return p
	}
	next := time.Date(p.Year, time.Month(p.Month), p.Day, 0, p.Minute, p.Second, 0, time.UTC).AddDate(0, 0, 1)
	return ZonedParts{
		Year:   next.Year(),
		Month:  int(next.Month()),
		Day:    next.Day(),
		Hour:   0,
		Minute: next.Minute(),
		Second: next.Second(),
	}
}

// OffsetMinutes returns the signed minutes to add to a wall-clock reading in
// tz, interpreted as if it were UTC, to reach the true UTC instant:
// UTC = localWallClockAsIfUTC + offset.
func OffsetMinutes(instant time.Time, tz string) (int, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return 0, err
	}
	_, secs := instant.In(loc).Zone()
	return -secs / 60, nil
}

// ZonedTimeToUTC converts wall-clock parts in tz to the UTC instant they name.
// The zone offset depends on the resulting instant (DST), so the conversion
// iterates: start from the naive UTC interpretation, recompute the offset at
// the current guess and correct, stop once the guess moves by less than the
// tolerance or the round limit is hit.
func ZonedTimeToUTC(parts ZonedParts, tz string) (time.Time, error) {
	if _, err := LoadZone(tz); err != nil {
		return time.Time{}, err
	}
	p := normalizeHour24(parts)
	naive := time.Date(p.Year, time.Month(p.Month), p.Day, p.Hour, p.Minute, p.Second, 0, time.UTC)

	guess := naive
	for i := 0; i < zonedToUTCMaxRounds; i++ {
		offset, err := OffsetMinutes(guess, tz)
		if err != nil {
			return time.Time{}, err
		}
		next := naive.Add(time.Duration(offset) * time.Minute)
		if absDuration(next.Sub(guess)) < zonedToUTCTolerance {
			return next, nil
		}
		guess = next
	}
	return guess, nil
}

// SameCalendarDay reports whether two instants fall on the same local calendar
// day in tz. It compares local dates, not UTC dates.
func SameCalendarDay(a, b time.Time, tz string) (bool, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return false, err
	}
	const layout = "2006-01-02"
	return a.In(loc).Format(layout) == b.In(loc).Format(layout), nil
}

// LocalWeekday returns the weekday of a UTC instant in tz.
func LocalWeekday(instant time.Time, tz string) (time.Weekday, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return 0, err
	}
	return instant.In(loc).Weekday(), nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
