package handlers

import (
	"net/http"

	"slotify/middleware"
	"slotify/models"
	"slotify/services/booking"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// respondLifecycleError maps the domain error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a system error and stays opaque.
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case booking.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case booking.IsConflict(err):
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())
	case booking.IsForbidden(err):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case booking.IsInvalidState(err):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid state", err.Error())
	default:
		utils.GetLogger().Error("booking operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error",
			"An unexpected error occurred. Please try again later.")
	}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actorID, _ := middleware.ActorFrom(c)
	req.UserID = actorID

	bk, err := h.Svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": bk})
}

// ConfirmBooking handles PUT /api/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	actorID, role := middleware.ActorFrom(c)
	bk, err := h.Svc.ConfirmBooking(c.Request.Context(), c.Param("id"), models.Actor{ID: actorID, Role: role})
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bk})
}

// CancelBooking handles PUT /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"required,max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actorID, role := middleware.ActorFrom(c)
	bk, err := h.Svc.CancelBooking(c.Request.Context(), c.Param("id"), input.Reason, models.Actor{ID: actorID, Role: role})
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bk})
}

// CompleteBooking handles PUT /api/bookings/:id/complete.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	actorID, role := middleware.ActorFrom(c)
	bk, err := h.Svc.CompleteBooking(c.Request.Context(), c.Param("id"), models.Actor{ID: actorID, Role: role})
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bk})
}

// AddReview handles POST /api/bookings/:id/review.
func (h *BookingHandler) AddReview(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actorID, role := middleware.ActorFrom(c)
	review, err := h.Svc.AddReview(c.Request.Context(), c.Param("id"), input.Rating, input.Comment, models.Actor{ID: actorID, Role: role})
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actorID, role := middleware.ActorFrom(c)
	bk, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"), models.Actor{ID: actorID, Role: role})
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bk})
}

// ListMyBookings handles GET /api/bookings/me.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	actorID, _ := middleware.ActorFrom(c)
	bookings, err := h.Svc.ListUserBookings(c.Request.Context(), actorID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListProviderBookings handles GET /api/bookings/provider.
func (h *BookingHandler) ListProviderBookings(c *gin.Context) {
	actorID, _ := middleware.ActorFrom(c)
	bookings, err := h.Svc.ListProviderBookings(c.Request.Context(), actorID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
