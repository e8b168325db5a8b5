package handlers

import (
	"errors"
	"net/http"

	"slotify/middleware"
	"slotify/models"
	"slotify/services/catalog"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AvailabilityHandler lets providers manage their recurring weekly windows.
// The scheduling engine only ever reads these.
type AvailabilityHandler struct {
	Svc *catalog.CachedAvailability
}

func NewAvailabilityHandler(svc *catalog.CachedAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// ListWindows handles GET /api/providers/:id/windows.
func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	windows, err := h.Svc.ListByProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.GetLogger().Error("failed to list availability windows", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "could not list windows")
		return
	}
	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

// CreateWindow handles POST /api/providers/:id/windows. Providers may only
// manage their own schedule.
func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	providerID := c.Param("id")
	actorID, role := middleware.ActorFrom(c)
	if actorID != providerID && role != models.RoleAdmin {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "you may only manage your own availability")
		return
	}

	var input struct {
		Weekday int  `json:"weekday" binding:"min=0,max=6"`
		Start   int  `json:"start" binding:"min=0,max=1439"`
		End     int  `json:"end" binding:"required,min=1,max=1440"`
		Active  bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.End <= input.Start {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "window end must be after start")
		return
	}

	window := &models.AvailabilityWindow{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Weekday:    input.Weekday,
		Start:      input.Start,
		End:        input.End,
		Active:     input.Active,
	}
	if err := h.Svc.Create(c.Request.Context(), window); err != nil {
		utils.GetLogger().Error("failed to create availability window", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "could not create window")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"window": window})
}

// SetWindowActive handles PUT /api/providers/:id/windows/:windowId/active.
func (h *AvailabilityHandler) SetWindowActive(c *gin.Context) {
	providerID := c.Param("id")
	actorID, role := middleware.ActorFrom(c)
	if actorID != providerID && role != models.RoleAdmin {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "you may only manage your own availability")
		return
	}

	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Svc.SetActive(c.Request.Context(), c.Param("windowId"), providerID, *input.Active); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Not found", "window not found")
			return
		}
		utils.GetLogger().Error("failed to update availability window", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "could not update window")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "window updated"})
}

// DeleteWindow handles DELETE /api/providers/:id/windows/:windowId.
func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	providerID := c.Param("id")
	actorID, role := middleware.ActorFrom(c)
	if actorID != providerID && role != models.RoleAdmin {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "you may only manage your own availability")
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), c.Param("windowId"), providerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Not found", "window not found")
			return
		}
		utils.GetLogger().Error("failed to delete availability window", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "could not delete window")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "window deleted"})
}
