package controllers

import (
	"TeleAdmin/handlers"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler.
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{Handler: authHandler}
}

// RegisterRoutes initializes the authentication routes. Login is the only
// route outside the session gate.
func (ac *AuthController) RegisterRoutes(router *gin.Engine, gate gin.HandlerFunc) {
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/logout", gate, ac.Handler.Logout)
}
