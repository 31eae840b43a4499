package scheduling

import (
	"testing"
	"time"

	"velora/models"

	"github.com/stretchr/testify/assert"
)

func weekdayHours(start, end string) models.WeekSchedule {
	day := models.DayWindow{Enabled: true, Start: start, End: end}
	return models.WeekSchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
	}
}

func TestValidateWorkingHoursBoundaries(t *testing.T) {
	hours := weekdayHours("09:00", "17:00")
	// Wednesday 2026-04-15 in New York, UTC-4 (EDT).
	day := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		startLoc string // local wall clock HH:MM
		duration time.Duration
		wantErr  error
	}{
		{"starts at opening", "09:00", time.Hour, nil},
		{"ends exactly at closing", "16:00", time.Hour, nil},
		{"fills the whole window", "09:00", 8 * time.Hour, nil},
		{"starts one minute early", "08:59", time.Hour, ErrOutsideHours},
		{"ends one minute late", "16:01", time.Hour, ErrOutsideHours},
		{"entirely before opening", "06:00", time.Hour, ErrOutsideHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startMin, err := models.ParseClock(tt.startLoc)
			assert.NoError(t, err)
			// Local wall clock to UTC: EDT is UTC-4.
			start := day.Add(time.Duration(startMin)*time.Minute + 4*time.Hour)
			err = ValidateWorkingHours(start, start.Add(tt.duration), hours, "America/New_York")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkingHoursDisabledDay(t *testing.T) {
	hours := weekdayHours("09:00", "17:00")
	// Saturday 2026-04-18, 10:00 local in New York.
	start := time.Date(2026, 4, 18, 14, 0, 0, 0, time.UTC)
	err := ValidateWorkingHours(start, start.Add(time.Hour), hours, "America/New_York")
	assert.ErrorIs(t, err, ErrDayNotBookable)
}

func TestValidateWorkingHoursCrossesMidnight(t *testing.T) {
	day := models.DayWindow{Enabled: true, Start: "09:00", End: "23:59"}
	hours := models.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
	// 23:30 local Wednesday in UTC, running 45 minutes into Thursday.
	start := time.Date(2026, 4, 15, 23, 30, 0, 0, time.UTC)
	err := ValidateWorkingHours(start, start.Add(45*time.Minute), hours, "UTC")
	assert.ErrorIs(t, err, ErrCrossesMidnight)
}

func TestValidateWorkingHoursMalformedWindow(t *testing.T) {
	hours := models.WeekSchedule{
		Wednesday: models.DayWindow{Enabled: true, Start: "9am", End: "17:00"},
	}
	start := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)
	err := ValidateWorkingHours(start, start.Add(time.Hour), hours, "UTC")
	assert.ErrorIs(t, err, ErrMalformedWindow)
}

func TestValidateWorkingHoursUsesLocalWeekday(t *testing.T) {
	// Only Friday is bookable. 03:00 UTC Saturday is still Friday 23:00 in
	// New York, but the one-hour appointment would cross local midnight.
	hours := models.WeekSchedule{
		Friday: models.DayWindow{Enabled: true, Start: "00:00", End: "23:59"},
	}
	start := time.Date(2026, 4, 18, 3, 0, 0, 0, time.UTC)
	err := ValidateWorkingHours(start, start.Add(time.Hour), hours, "America/New_York")
	assert.ErrorIs(t, err, ErrCrossesMidnight)

	// Thirty minutes stays inside Friday's window.
	err = ValidateWorkingHours(start, start.Add(30*time.Minute), hours, "America/New_York")
	assert.NoError(t, err)
}

func TestValidateWorkingHoursInvalidZone(t *testing.T) {
	hours := weekdayHours("09:00", "17:00")
	start := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)
	err := ValidateWorkingHours(start, start.Add(time.Hour), hours, "Bad/Zone")
	assert.Error(t, err)
}
