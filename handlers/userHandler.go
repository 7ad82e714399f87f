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

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetUsers applies the filter controls from the query string and renders
// the users tab. A typing parameter marks keystroke-frequency search
// input, which is debounced instead of applied immediately.
func (h *UserHandler) GetUsers(c *gin.Context) {
	if term, ok := c.GetQuery("typing"); ok {
		h.service.SearchInput(term)
		c.JSON(http.StatusOK, h.service.View())
		return
	}
	h.service.ApplyFilters(services.UserFilters{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
	})
	if sortKey := c.Query("sort"); sortKey != "" {
		h.service.Sort(sortKey)
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "0")); err == nil {
		h.service.SetPage(page)
	}
	c.JSON(http.StatusOK, h.service.View())
}

// RefreshUsers re-fetches the snapshot from the upstream.
func (h *UserHandler) RefreshUsers(c *gin.Context) {
	if err := h.service.Load(c.Request.Context()); err != nil {
		middlewares.HttpError(c, "Failed to load users", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, h.service.View())
}

// CreateUser registers a new account through the upstream.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c.Request.Context(), req); err != nil {
		middlewares.HttpError(c, "Failed to create user", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created"})
}

// DeleteUser removes an account. The confirm query flag is the explicit
// confirmation step.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	confirmed := c.Query("confirm") == "true"
	if err := h.service.Delete(c.Request.Context(), id, confirmed); err != nil {
		if errors.Is(err, services.ErrConfirmationRequired) {
			c.JSON(http.StatusConflict, gin.H{"error": "Confirmation required", "confirm": false})
			return
		}
		middlewares.HttpError(c, "Failed to delete user", http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
