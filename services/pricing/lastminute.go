package pricing

import (
	"math"
	"time"

	"velora/models"
	"velora/services/scheduling"
)

// Window identifies which last-minute window a slot fell into.
type Window string

const (
	WindowNone    Window = "NONE"
	WindowSameDay Window = "SAME_DAY"
	Window24h     Window = "WITHIN_24H"
)

// Reasons explain every quote outcome for observability. The engine always
// sets exactly one.
const (
	ReasonDisabled        = "DISABLED"
	ReasonPastSlot        = "PAST_SLOT"
	ReasonDayDisabled     = "DAY_DISABLED"
	ReasonBlockedRange    = "BLOCKED_RANGE"
	ReasonServiceDisabled = "SERVICE_DISABLED"
	ReasonBelowMinPrice   = "BELOW_MIN_PRICE"
	ReasonOutsideWindow   = "OUTSIDE_WINDOW"
	ReasonZeroPct         = "ZERO_PCT"
	ReasonApplied         = "APPLIED"
)

// maxDiscountPct is a safety ceiling applied at read time regardless of what
// is stored.
const maxDiscountPct = 50

// PriceQuote is the last-minute pricing outcome for one candidate slot.
type PriceQuote struct {
	ProfessionalID string    `json:"professionalId"`
	OfferingID     string    `json:"offeringId"`
	ScheduledFor   time.Time `json:"scheduledFor"`
	BasePrice      float64   `json:"basePrice"`
	AppliedPct     int       `json:"appliedPct"`
	DiscountAmount float64   `json:"discountAmount"`
	FinalPrice     float64   `json:"finalPrice"`
	Window         Window    `json:"window"`
	Reason         string    `json:"reason"`
}

// ComputeQuote runs the last-minute decision chain over a settings snapshot.
// It is a pure function of its inputs; now is passed in so tests control the
// clock. The first applicable rule short-circuits.
func ComputeQuote(settings models.LastMinuteSettings, offeringID string, scheduledFor time.Time, basePrice float64, tz string, now time.Time) (PriceQuote, error) {
	quote := PriceQuote{
		OfferingID:   offeringID,
		ScheduledFor: scheduledFor,
		BasePrice:    basePrice,
		FinalPrice:   basePrice,
		Window:       WindowNone,
	}

	if !settings.Enabled || !settings.DiscountsEnabled {
		quote.Reason = ReasonDisabled
		return quote, nil
	}

	// A slot already in the past never discounts.
	if scheduledFor.Before(now) {
		quote.Reason = ReasonPastSlot
		return quote, nil
	}

	weekday, err := scheduling.LocalWeekday(scheduledFor, tz)
	if err != nil {
		return PriceQuote{}, err
	}
	if settings.DayDisabled(weekday) {
		quote.Reason = ReasonDayDisabled
		return quote, nil
	}

	for _, block := range settings.Blocks {
		if !scheduledFor.Before(block.StartAt) && scheduledFor.Before(block.EndAt) {
			quote.Reason = ReasonBlockedRange
			return quote, nil
		}
	}

	rule := settings.RuleFor(offeringID)
	if rule != nil && !rule.Enabled {
		quote.Reason = ReasonServiceDisabled
		return quote, nil
	}

	minRequired := settings.MinPrice
	if rule != nil && rule.MinPrice != nil {
		minRequired = rule.MinPrice
	}
	if minRequired != nil && basePrice < *minRequired {
		quote.Reason = ReasonBelowMinPrice
		return quote, nil
	}

	sameDay, err := scheduling.SameCalendarDay(scheduledFor, now, tz)
	if err != nil {
		return PriceQuote{}, err
	}
	var pct int
	switch {
	case sameDay:
		pct = clampPct(settings.WindowSameDayPct)
		quote.Window = WindowSameDay
	case scheduledFor.Sub(now) <= 24*time.Hour:
		pct = clampPct(settings.Window24hPct)
		quote.Window = Window24h
	default:
		quote.Reason = ReasonOutsideWindow
		return quote, nil
	}

	if pct == 0 {
		quote.Window = WindowNone
		quote.Reason = ReasonZeroPct
		return quote, nil
	}

	quote.AppliedPct = pct
	quote.DiscountAmount = round2(basePrice * float64(pct) / 100)
	quote.FinalPrice = math.Max(0, round2(basePrice-quote.DiscountAmount))
	quote.Reason = ReasonApplied
	return quote, nil
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > maxDiscountPct {
		return maxDiscountPct
	}
	return pct
}

// round2 rounds to 2 decimal places, half up on the cent boundary.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
