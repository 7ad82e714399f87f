package handlers

import (
	"net/http"
	"strconv"

	"TeleAdmin/middlewares"
	"TeleAdmin/models"
	"TeleAdmin/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type DoctorHandler struct {
	service *services.DoctorService
}

func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// GetDoctors applies the filter controls and renders the doctors tab.
// A quick query parameter applies a named preset instead.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	if term, ok := c.GetQuery("typing"); ok {
		h.service.SearchInput(term)
		c.JSON(http.StatusOK, h.service.View())
		return
	}
	if quick := c.Query("quick"); quick != "" {
		h.service.QuickFilter(quick)
	} else {
		h.service.ApplyFilters(services.DoctorFilters{
			Search:     c.Query("search"),
			Specialty:  c.Query("specialty"),
			Status:     c.Query("status"),
			Experience: c.Query("experience"),
		})
	}
	if sortKey := c.Query("sort"); sortKey != "" {
		h.service.Sort(sortKey)
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "0")); err == nil {
		h.service.SetPage(page)
	}
	c.JSON(http.StatusOK, h.service.View())
}

// RefreshDoctors re-fetches the snapshot from the upstream.
func (h *DoctorHandler) RefreshDoctors(c *gin.Context) {
	if err := h.service.Load(c.Request.Context()); err != nil {
		middlewares.HttpError(c, "Failed to load doctors", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, h.service.View())
}

// CreateDoctor creates a doctor account through the upstream.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req models.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c.Request.Context(), req); err != nil {
		middlewares.HttpError(c, "Failed to create doctor", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Doctor created"})
}

// DeleteDoctor removes a doctor account after confirmation.
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor id"})
		return
	}
	confirmed := c.Query("confirm") == "true"
	if err := h.service.Delete(c.Request.Context(), id, confirmed); err != nil {
		if errors.Is(err, services.ErrConfirmationRequired) {
			c.JSON(http.StatusConflict, gin.H{"error": "Confirmation required", "confirm": false})
			return
		}
		middlewares.HttpError(c, "Failed to delete doctor", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}
