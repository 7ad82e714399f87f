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

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// GetPatients applies the filter controls and renders the patients tab.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	if term, ok := c.GetQuery("typing"); ok {
		h.service.SearchInput(term)
		c.JSON(http.StatusOK, h.service.View())
		return
	}
	h.service.ApplyFilters(services.PatientFilters{
		Search:   c.Query("search"),
		Gender:   c.Query("gender"),
		Status:   c.Query("status"),
		AgeRange: c.Query("ageRange"),
	})
	if sortKey := c.Query("sort"); sortKey != "" {
		h.service.Sort(sortKey)
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "0")); err == nil {
		h.service.SetPage(page)
	}
	c.JSON(http.StatusOK, h.service.View())
}

// RefreshPatients re-fetches the snapshot from the upstream.
func (h *PatientHandler) RefreshPatients(c *gin.Context) {
	if err := h.service.Load(c.Request.Context()); err != nil {
		middlewares.HttpError(c, "Failed to load patients", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, h.service.View())
}

// CreatePatient registers a patient account through the upstream.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req models.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c.Request.Context(), req); err != nil {
		middlewares.HttpError(c, "Failed to create patient", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Patient created"})
}

// DeletePatient removes a patient account after confirmation.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient id"})
		return
	}
	confirmed := c.Query("confirm") == "true"
	if err := h.service.Delete(c.Request.Context(), id, confirmed); err != nil {
		if errors.Is(err, services.ErrConfirmationRequired) {
			c.JSON(http.StatusConflict, gin.H{"error": "Confirmation required", "confirm": false})
			return
		}
		middlewares.HttpError(c, "Failed to delete patient", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}
