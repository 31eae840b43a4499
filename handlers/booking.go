package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"velora/middleware"
	"velora/models"
	"velora/services/booking"
)

// BookingService is assigned in main once the repositories are initialized.
var BookingService booking.BookingService

// statusForCode maps booking error codes to HTTP statuses. Conflict-style
// outcomes all map to 409 so clients handle them with one retry path.
func statusForCode(code booking.ErrorCode) int {
	switch code {
	case booking.CodeValidation:
		return http.StatusBadRequest
	case booking.CodeNotFound, booking.CodeHoldNotFound:
		return http.StatusNotFound
	case booking.CodeHoldExpired:
		return http.StatusGone
	case booking.CodeHoldMismatch, booking.CodeTimeNotAvailable,
		booking.CodeOpeningNotAvailable, booking.CodeWorkingHoursViolation,
		booking.CodeInvalidState:
		return http.StatusConflict
	case booking.CodeProfessionalConfig:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondBookingError(c *gin.Context, err error) {
	code := booking.CodeOf(err)
	if code == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(statusForCode(code), gin.H{"error": err.Error(), "code": code})
}

// HoldSlot validates a requested slot and claims it for the caller.
func HoldSlot(c *gin.Context) {
	var input struct {
		ProfessionalID string              `json:"professionalId" binding:"required"`
		OfferingID     string              `json:"offeringId" binding:"required"`
		LocationType   models.LocationType `json:"locationType" binding:"required"`
		ScheduledFor   time.Time           `json:"scheduledFor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	hold, err := BookingService.ValidateAndHold(c.Request.Context(), booking.HoldRequest{
		ClientID:       middleware.SubjectID(c),
		ProfessionalID: input.ProfessionalID,
		OfferingID:     input.OfferingID,
		LocationType:   input.LocationType,
		ScheduledFor:   input.ScheduledFor,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hold)
}

// ReleaseHold gives a held slot back without booking it.
func ReleaseHold(c *gin.Context) {
	holdID := c.Param("holdID")
	if err := BookingService.ReleaseHold(c.Request.Context(), middleware.SubjectID(c), holdID); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": true})
}

// ConfirmBooking turns a held slot into a booking.
func ConfirmBooking(c *gin.Context) {
	var input struct {
		HoldID string               `json:"holdId" binding:"required"`
		Source models.BookingSource `json:"source"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := BookingService.CreateBookingFromHold(c.Request.Context(), middleware.SubjectID(c), input.HoldID, input.Source)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RescheduleBooking moves a booking to a new, already-held slot.
func RescheduleBooking(c *gin.Context) {
	bookingID := c.Param("bookingID")
	var input struct {
		HoldID       string              `json:"holdId" binding:"required"`
		LocationType models.LocationType `json:"locationType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	moved, err := BookingService.RescheduleBooking(c.Request.Context(), middleware.SubjectID(c), bookingID, input.HoldID, input.LocationType)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, moved)
}

// CancelBooking cancels a booking on the professional's behalf, optionally
// promoting a waitlisted booking into the freed slot.
func CancelBooking(c *gin.Context) {
	bookingID := c.Param("bookingID")
	var input struct {
		Reason          string `json:"reason"`
		PromoteWaitlist bool   `json:"promoteWaitlist"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := BookingService.CancelBooking(c.Request.Context(), middleware.SubjectID(c), bookingID, input.Reason, input.PromoteWaitlist)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AcceptBooking approves a pending booking.
func AcceptBooking(c *gin.Context) {
	updated, err := BookingService.AcceptBooking(c.Request.Context(), middleware.SubjectID(c), c.Param("bookingID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// StartBooking marks the session as in progress.
func StartBooking(c *gin.Context) {
	updated, err := BookingService.StartBooking(c.Request.Context(), middleware.SubjectID(c), c.Param("bookingID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// FinishBooking completes a started session.
func FinishBooking(c *gin.Context) {
	updated, err := BookingService.FinishBooking(c.Request.Context(), middleware.SubjectID(c), c.Param("bookingID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetBooking fetches a single booking.
func GetBooking(c *gin.Context) {
	b, err := BookingService.GetBooking(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookings returns the caller's bookings.
func ListMyBookings(c *gin.Context) {
	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	bookings, err := BookingService.ListClientBookings(c.Request.Context(), middleware.SubjectID(c), limit)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListCalendar returns the caller's bookings as a professional over a
// from/to window (RFC 3339 query params).
func ListCalendar(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
		return
	}

	bookings, err := BookingService.ListProfessionalBookings(c.Request.Context(), middleware.SubjectID(c), from, to)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
