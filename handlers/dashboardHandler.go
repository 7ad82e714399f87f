package handlers

import (
	"net/http"
	"strconv"

	"TeleAdmin/middlewares"
	"TeleAdmin/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard renders the monitoring regions, live stats included.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.View())
}

// RefreshDashboard re-fetches every region concurrently.
func (h *DashboardHandler) RefreshDashboard(c *gin.Context) {
	if err := h.service.Load(c.Request.Context()); err != nil {
		middlewares.HttpError(c, "Failed to load dashboard", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, h.service.View())
}

// DeleteReview is the moderation action on a flagged review.
func (h *DashboardHandler) DeleteReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}
	confirmed := c.Query("confirm") == "true"
	if err := h.service.DeleteReview(c.Request.Context(), id, confirmed); err != nil {
		if errors.Is(err, services.ErrConfirmationRequired) {
			c.JSON(http.StatusConflict, gin.H{"error": "Confirmation required", "confirm": false})
			return
		}
		middlewares.HttpError(c, "Failed to delete review", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
