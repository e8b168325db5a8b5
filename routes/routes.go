package routes

import (
	"net/http"
	"time"

	"slotify/handlers"
	"slotify/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handler sets the route registrar needs.
type HandlerBundle struct {
	Booking      *handlers.BookingHandler
	Notification *handlers.NotificationHandler
	Availability *handlers.AvailabilityHandler
}

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("", hb.Booking.CreateBooking)
		bookingGroup.GET("/me", hb.Booking.ListMyBookings)
		bookingGroup.GET("/provider", hb.Booking.ListProviderBookings)
		bookingGroup.GET("/:id", hb.Booking.GetBooking)
		bookingGroup.PUT("/:id/confirm", hb.Booking.ConfirmBooking)
		bookingGroup.PUT("/:id/cancel", hb.Booking.CancelBooking)
		bookingGroup.PUT("/:id/complete", hb.Booking.CompleteBooking)
		bookingGroup.POST("/:id/review", hb.Booking.AddReview)
	}
}

// RegisterNotificationRoutes sets up the notification read side and admin bulk send.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	notifGroup := r.Group("/api/notifications")
	{
		notifGroup.Use(middleware.JWTAuthMiddleware())
		notifGroup.GET("", hb.Notification.List)
		notifGroup.GET("/unread-count", hb.Notification.UnreadCount)
		notifGroup.PUT("/read-all", hb.Notification.MarkAllRead)
		notifGroup.PUT("/:id/read", hb.Notification.MarkRead)
		notifGroup.DELETE("/:id", hb.Notification.Delete)
		notifGroup.POST("/bulk", hb.Notification.SendBulk)
	}
}

// RegisterProviderRoutes sets up provider availability window management.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	providerGroup := r.Group("/api/providers")
	{
		// Window listings are public so clients can render open slots.
		providerGroup.GET("/:id/windows", hb.Availability.ListWindows)

		protected := providerGroup.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("/:id/windows", hb.Availability.CreateWindow)
		protected.PUT("/:id/windows/:windowId/active", hb.Availability.SetWindowActive)
		protected.DELETE("/:id/windows/:windowId", hb.Availability.DeleteWindow)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Slotify"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
}
