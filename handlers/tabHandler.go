package handlers

import (
	"net/http"

	"TeleAdmin/console"
	"TeleAdmin/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type TabHandler struct {
	app *console.App
}

func NewTabHandler(app *console.App) *TabHandler {
	return &TabHandler{app: app}
}

// Activate switches the console to the named tab, running its loader.
func (h *TabHandler) Activate(c *gin.Context) {
	tab := console.Tab(c.Param("tab"))
	if err := h.app.Activate(c.Request.Context(), tab); err != nil {
		if errors.Is(err, console.ErrUnknownTab) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown tab", "current": h.app.Tabs.Current()})
			return
		}
		middlewares.HttpError(c, "Failed to load tab", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"current": h.app.Tabs.Current(),
		"title":   h.app.Tabs.Title(),
	})
}

// Current reports the active tab without switching.
func (h *TabHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"current": h.app.Tabs.Current(),
		"title":   h.app.Tabs.Title(),
	})
}
