package models

import "time"

// DayWindow is one weekday's bookable window, expressed in the location's
// local time as 24-hour "HH:MM" strings.
type DayWindow struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Start   string `bson:"start" json:"start"`
	End     string `bson:"end" json:"end"`
}

// WeekSchedule holds working hours for all seven weekdays. It replaces the
// loosely-typed JSON blob the mobile clients submit; the repository layer
// validates it once at the read boundary.
type WeekSchedule struct {
	Monday    DayWindow `bson:"monday" json:"monday"`
	Tuesday   DayWindow `bson:"tuesday" json:"tuesday"`
	Wednesday DayWindow `bson:"wednesday" json:"wednesday"`
	Thursday  DayWindow `bson:"thursday" json:"thursday"`
	Friday    DayWindow `bson:"friday" json:"friday"`
	Saturday  DayWindow `bson:"saturday" json:"saturday"`
	Sunday    DayWindow `bson:"sunday" json:"sunday"`
}

// Day returns the window for the given Go weekday.
func (w WeekSchedule) Day(d time.Weekday) DayWindow {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// ProfessionalLocation is a bookable site for a professional. TimeZone is
// authoritative for all scheduling math at this location.
type ProfessionalLocation struct {
	TimeZone      string       `bson:"timeZone" json:"timeZone"`
	Hours         WeekSchedule `bson:"workingHours" json:"workingHours"`
	HoursSet      bool         `bson:"workingHoursSet" json:"workingHoursSet"`
	BufferMinutes int          `bson:"bufferMinutes" json:"bufferMinutes"`
	Address       string       `bson:"address,omitempty" json:"address,omitempty"`
	Lat           float64      `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng           float64      `bson:"lng,omitempty" json:"lng,omitempty"`
}

// LastMinuteServiceRule is a per-offering override for the last-minute engine.
type LastMinuteServiceRule struct {
	OfferingID string   `bson:"offeringId" json:"offeringId"`
	Enabled    bool     `bson:"enabled" json:"enabled"`
	MinPrice   *float64 `bson:"minPrice,omitempty" json:"minPrice,omitempty"`
}

// LastMinuteBlock is a UTC range during which no discount applies regardless
// of the other rules. The range is half-open: [StartAt, EndAt).
type LastMinuteBlock struct {
	StartAt time.Time `bson:"startAt" json:"startAt"`
	EndAt   time.Time `bson:"endAt" json:"endAt"`
}

// LastMinuteSettings configures the last-minute discount engine for one
// professional. Percentages are clamped to [0, 50] at read time.
type LastMinuteSettings struct {
	Enabled           bool                    `bson:"enabled" json:"enabled"`
	DiscountsEnabled  bool                    `bson:"discountsEnabled" json:"discountsEnabled"`
	DisabledMonday    bool                    `bson:"disabledMonday" json:"disabledMonday"`
	DisabledTuesday   bool                    `bson:"disabledTuesday" json:"disabledTuesday"`
	DisabledWednesday bool                    `bson:"disabledWednesday" json:"disabledWednesday"`
	DisabledThursday  bool                    `bson:"disabledThursday" json:"disabledThursday"`
	DisabledFriday    bool                    `bson:"disabledFriday" json:"disabledFriday"`
	DisabledSaturday  bool                    `bson:"disabledSaturday" json:"disabledSaturday"`
	DisabledSunday    bool                    `bson:"disabledSunday" json:"disabledSunday"`
	WindowSameDayPct  int                     `bson:"windowSameDayPct" json:"windowSameDayPct"`
	Window24hPct      int                     `bson:"window24hPct" json:"window24hPct"`
	MinPrice          *float64                `bson:"minPrice,omitempty" json:"minPrice,omitempty"`
	ServiceRules      []LastMinuteServiceRule `bson:"serviceRules,omitempty" json:"serviceRules,omitempty"`
	Blocks            []LastMinuteBlock       `bson:"blocks,omitempty" json:"blocks,omitempty"`
}

// DayDisabled reports whether discounts are switched off for the given local
// weekday.
func (s LastMinuteSettings) DayDisabled(d time.Weekday) bool {
	switch d {
	case time.Monday:
		return s.DisabledMonday
	case time.Tuesday:
		return s.DisabledTuesday
	case time.Wednesday:
		return s.DisabledWednesday
	case time.Thursday:
		return s.DisabledThursday
	case time.Friday:
		return s.DisabledFriday
	case time.Saturday:
		return s.DisabledSaturday
	default:
		return s.DisabledSunday
	}
}

// RuleFor returns the per-offering rule, if one exists.
func (s LastMinuteSettings) RuleFor(offeringID string) *LastMinuteServiceRule {
	for i := range s.ServiceRules {
		if s.ServiceRules[i].OfferingID == offeringID {
			return &s.ServiceRules[i]
		}
	}
	return nil
}

// Professional is the scheduling view of a professional's account. Profile,
// portfolio and verification state live in the surrounding system.
type Professional struct {
	ID                 string                                `bson:"id" json:"id"`
	DisplayName        string                                `bson:"displayName" json:"displayName,omitempty"`
	AutoAcceptBookings bool                                  `bson:"autoAcceptBookings" json:"autoAcceptBookings"`
	Locations          map[LocationType]ProfessionalLocation `bson:"locations" json:"locations"`
	LastMinute         *LastMinuteSettings                   `bson:"lastMinute,omitempty" json:"lastMinute,omitempty"`
	CreatedAt          time.Time                             `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time                             `bson:"updatedAt" json:"updatedAt"`
}

// LocationFor returns the professional's location for the given type.
func (p Professional) LocationFor(lt LocationType) (ProfessionalLocation, bool) {
	loc, ok := p.Locations[lt]
	return loc, ok
}
