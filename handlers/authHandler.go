package handlers

import (
	"net/http"

	"TeleAdmin/middlewares"
	"TeleAdmin/models"
	"TeleAdmin/services"
	"TeleAdmin/session"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates the administrator and hands back the console token,
// also set as a cookie for browser navigation.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.LoginRequest
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.service.Login(c.Request.Context(), creds)
	if errors.Is(err, session.ErrNotAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Administrator access required"})
		return
	}
	if err != nil {
		middlewares.HttpError(c, "Login failed", http.StatusUnauthorized, err)
		return
	}

	c.SetCookie(middlewares.SessionCookie, token, int(session.ConsoleTokenExpiry.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout ends the console session and clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.Logout(c.Request.Context())
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
