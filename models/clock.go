package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 2 {
		return 0, fmt.Errorf("malformed clock value %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(fields[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed clock value %q, want HH:MM", s)
	}
	m, err := strconv.Atoi(fields[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed clock value %q, want HH:MM", s)
	}
	return h*60 + m, nil
}

// Window resolves the day's start/end as minutes since local midnight.
func (d DayWindow) Window() (start, end int, err error) {
	start, err = ParseClock(d.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(d.End)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("window end %q is not after start %q", d.End, d.Start)
	}
	return start, end, nil
}

// Validate checks every enabled day parses to a well-formed window. It runs
// once at the storage read boundary, not at every use site.
func (w WeekSchedule) Validate() error {
	days := map[string]DayWindow{
		"monday":    w.Monday,
		"tuesday":   w.Tuesday,
		"wednesday": w.Wednesday,
		"thursday":  w.Thursday,
		"friday":    w.Friday,
		"saturday":  w.Saturday,
		"sunday":    w.Sunday,
	}
	for name, d := range days {
		if !d.Enabled {
			continue
		}
		if _, _, err := d.Window(); err != nil {
			return fmt.Errorf("working hours for %s: %w", name, err)
		}
	}
	return nil
}
