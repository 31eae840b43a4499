package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZonedTimeToUTCRoundTrip(t *testing.T) {
	zones := []string{"America/New_York", "Europe/Berlin", "Asia/Tokyo", "Australia/Sydney", "UTC"}
	instants := []time.Time{
		time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC),
		time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 11, 2, 23, 45, 0, 0, time.UTC),
	}

	for _, tz := range zones {
		for _, instant := range instants {
			parts, err := ZonedPartsOf(instant, tz)
			require.NoError(t, err)

			back, err := ZonedTimeToUTC(parts, tz)
			require.NoError(t, err)
			assert.True(t, back.Equal(instant), "round trip through %s: %v became %v", tz, instant, back)
		}
	}
}

func TestZonedTimeToUTCAcrossDSTTransition(t *testing.T) {
	// Berlin springs forward on 2026-03-29: 02:00 CET jumps to 03:00 CEST.
	before := ZonedParts{Year: 2026, Month: 3, Day: 29, Hour: 1, Minute: 30}
	after := ZonedParts{Year: 2026, Month: 3, Day: 29, Hour: 3, Minute: 30}

	utcBefore, err := ZonedTimeToUTC(before, "Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 29, 0, 30, 0, 0, time.UTC), utcBefore)

	utcAfter, err := ZonedTimeToUTC(after, "Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 29, 1, 30, 0, 0, time.UTC), utcAfter)
}

func TestZonedTimeToUTCHour24RollsOver(t *testing.T) {
	parts := ZonedParts{Year: 2026, Month: 5, Day: 10, Hour: 24, Minute: 15}
	got, err := ZonedTimeToUTC(parts, "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 11, 0, 15, 0, 0, time.UTC), got)
}

func TestOffsetMinutesSign(t *testing.T) {
	// Tokyo is UTC+9 year round, so reaching UTC from a Tokyo wall clock
	// means subtracting nine hours.
	instant := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	offset, err := OffsetMinutes(instant, "Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, -9*60, offset)

	// New York in winter is UTC-5.
	offset, err = OffsetMinutes(instant, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, 5*60, offset)
}

func TestLoadZoneRejectsBadInput(t *testing.T) {
	_, err := LoadZone("")
	assert.Error(t, err)

	_, err = LoadZone("Mars/Olympus_Mons")
	assert.Error(t, err)

	_, err = ZonedTimeToUTC(ZonedParts{Year: 2026, Month: 1, Day: 1}, "Not/AZone")
	assert.Error(t, err)
}

func TestSameCalendarDayUsesLocalDates(t *testing.T) {
	// 2026-03-10 01:00 UTC and 23:00 UTC are the same UTC day, but in Tokyo
	// the first is 10:00 on the 10th and the second 08:00 on the 11th.
	a := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	same, err := SameCalendarDay(a, b, "UTC")
	require.NoError(t, err)
	assert.True(t, same)

	same, err = SameCalendarDay(a, b, "Asia/Tokyo")
	require.NoError(t, err)
	assert.False(t, same)
}

func TestLocalWeekday(t *testing.T) {
	// Friday 23:00 in New York is already Saturday in UTC.
	instant := time.Date(2026, 1, 10, 4, 0, 0, 0, time.UTC) // Saturday 04:00 UTC
	wd, err := LocalWeekday(instant, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, wd)
}
