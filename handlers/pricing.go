package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	professionalRepo "velora/database/repository/professional"
	"velora/models"
	"velora/services/pricing"
	"velora/utils"
)

// PricingService and Professionals are assigned in main.
var (
	PricingService pricing.QuoteService
	Professionals  professionalRepo.ProfessionalRepository
)

// QuoteLastMinutePrice returns the effective price for a slot, applying the
// professional's last-minute discount configuration when it qualifies.
func QuoteLastMinutePrice(c *gin.Context) {
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

	offering, err := Professionals.GetOffering(c.Request.Context(), input.OfferingID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "offering not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load offering"})
		return
	}
	if offering.ProfessionalID != input.ProfessionalID || !offering.SupportsLocation(input.LocationType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offering does not match the request"})
		return
	}
	basePrice, _ := offering.PriceAndDuration(input.LocationType)

	quote, err := PricingService.QuoteLastMinutePrice(c.Request.Context(), input.ProfessionalID, input.OfferingID, input.ScheduledFor, basePrice)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// HealthCheck reports the latest stored health snapshot.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
