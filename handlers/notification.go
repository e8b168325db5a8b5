package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"slotify/middleware"
	"slotify/models"
	"slotify/services/notification"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// NotificationHandler exposes the notification read side plus admin bulk send.
// Every operation is scoped to the authenticated user's own notifications.
type NotificationHandler struct {
	Svc    notification.NotificationService
	Logger *zap.Logger
}

func NewNotificationHandler(svc notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

func respondNotificationError(c *gin.Context, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, http.StatusNotFound, "Not found", "notification not found")
		return
	}
	utils.GetLogger().Error("notification operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error",
		"An unexpected error occurred. Please try again later.")
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	actorID, _ := middleware.ActorFrom(c)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)

	notifications, err := h.Svc.ListByUser(c.Request.Context(), actorID, limit, offset)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actorID, _ := middleware.ActorFrom(c)
	count, err := h.Svc.UnreadCount(c.Request.Context(), actorID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actorID, _ := middleware.ActorFrom(c)
	if err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// MarkAllRead handles PUT /api/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actorID, _ := middleware.ActorFrom(c)
	if err := h.Svc.MarkAllRead(c.Request.Context(), actorID); err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

// Delete handles DELETE /api/notifications/:id.
func (h *NotificationHandler) Delete(c *gin.Context) {
	actorID, _ := middleware.ActorFrom(c)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}

// SendBulk handles POST /api/notifications/bulk (admin only).
func (h *NotificationHandler) SendBulk(c *gin.Context) {
	_, role := middleware.ActorFrom(c)
	if role != models.RoleAdmin {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "admin role required")
		return
	}

	var input struct {
		UserIDs []string `json:"userIds" binding:"required,min=1"`
		Type    string   `json:"type" binding:"required"`
		Title   string   `json:"title" binding:"required"`
		Message string   `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	results := h.Svc.SendBulk(c.Request.Context(), input.UserIDs, input.Type, input.Title, input.Message)
	c.JSON(http.StatusOK, gin.H{"notifications": results})
}
