package handlers

import (
	"net/http"

	"TeleAdmin/feed"
	"TeleAdmin/notify"

	"github.com/gin-gonic/gin"
)

// NotifyHandler serves the transient UI state: toasts, the shared modal
// and the real-time notification feed.
type NotifyHandler struct {
	toasts *notify.Service
	feed   *feed.Feed
}

func NewNotifyHandler(toasts *notify.Service, liveFeed *feed.Feed) *NotifyHandler {
	return &NotifyHandler{toasts: toasts, feed: liveFeed}
}

// GetToasts returns the visible toasts and the open modal, if any.
func (h *NotifyHandler) GetToasts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"toasts": h.toasts.Visible(),
		"modal":  h.toasts.Modal(),
	})
}

// DismissToast removes a toast before its auto-expiry.
func (h *NotifyHandler) DismissToast(c *gin.Context) {
	if !h.toasts.Dismiss(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Toast not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dismissed"})
}

// CloseModal closes the shared modal.
func (h *NotifyHandler) CloseModal(c *gin.Context) {
	h.toasts.CloseModal()
	c.JSON(http.StatusOK, gin.H{"message": "Closed"})
}

// GetFeed returns the notification feed, newest first, and the
// connection indicator.
func (h *NotifyHandler) GetFeed(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connected": h.feed.IsConnected(),
		"entries":   h.feed.Entries(),
	})
}
