package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"TeleAdmin/middlewares"
	"TeleAdmin/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// GetPayments runs the fetch strategy matching the query string: a date
// range selects the range endpoint, otherwise server-side pagination.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	if term, ok := c.GetQuery("typing"); ok {
		h.service.SearchInput(term)
		c.JSON(http.StatusOK, h.service.View())
		return
	}
	if quick := c.Query("quick"); quick != "" {
		if err := h.service.QuickFilter(c.Request.Context(), quick); err != nil {
			middlewares.HttpError(c, "Failed to apply quick filter", http.StatusBadRequest, err)
			return
		}
		c.JSON(http.StatusOK, h.service.View())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(services.DefaultPaymentPageSize)))
	err := h.service.Apply(c.Request.Context(), services.PaymentFilters{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Page:      page,
		Size:      size,
	})
	if err != nil {
		middlewares.HttpError(c, "Failed to load payments", http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, h.service.View())
}

// ExportPayments streams the export file for the active filters.
func (h *PaymentHandler) ExportPayments(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	body, contentType, filename, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		middlewares.HttpError(c, "Export failed", http.StatusBadGateway, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		middlewares.HttpError(c, "Export stream interrupted", http.StatusBadGateway, err)
	}
}

// RefundPayment reverses a payment. Requires the confirm flag and a
// non-empty reason.
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment id"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmed := c.Query("confirm") == "true"
	if err := h.service.Refund(c.Request.Context(), id, req.Reason, confirmed); err != nil {
		if errors.Is(err, services.ErrConfirmationRequired) {
			c.JSON(http.StatusConflict, gin.H{"error": "Confirmation required", "confirm": false})
			return
		}
		middlewares.HttpError(c, "Refund failed", http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment refunded"})
}
