package routes

import (
	"time"

	"velora/handlers"
	"velora/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the scheduling endpoints. Client and
// professional routes share the same auth middleware; the handlers treat the
// authenticated subject as client or professional depending on the group.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())

		// Client flow: validate and hold, then confirm.
		api.POST("/hold", handlers.HoldSlot)
		api.DELETE("/hold/:holdID", handlers.ReleaseHold)
		api.POST("", handlers.ConfirmBooking)
		api.POST("/:bookingID/reschedule", handlers.RescheduleBooking)
		api.GET("", handlers.ListMyBookings)
		api.GET("/calendar", handlers.ListCalendar)
		api.GET("/:bookingID", handlers.GetBooking)

		// Professional flow: lifecycle transitions.
		api.POST("/:bookingID/accept", handlers.AcceptBooking)
		api.POST("/:bookingID/start", handlers.StartBooking)
		api.POST("/:bookingID/finish", handlers.FinishBooking)
		api.POST("/:bookingID/cancel", handlers.CancelBooking)
	}
}

// RegisterPricingRoutes sets up the last-minute pricing endpoints.
func RegisterPricingRoutes(r *gin.Engine) {
	api := r.Group("/api/pricing")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/quote", handlers.QuoteLastMinutePrice)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthCheck)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r)
	RegisterPricingRoutes(r)
}
