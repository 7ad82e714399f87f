package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"TeleAdmin/models"
	"TeleAdmin/session"

	"github.com/gin-gonic/gin"
)

// contextKey is a custom context key type to store session details.
type contextKey string

const (
	sessionIDKey contextKey = "sessionID"
	adminIDKey   contextKey = "adminID"
)

// SessionCookie is the fallback cookie carrying the console token when no
// Authorization header is present.
const SessionCookie = "console_session"

// SessionGate guards every console route behind an active admin session.
// Validation is local only (token decryption plus the in-memory session
// check); a request without a valid session is rejected before anything
// reaches the upstream API.
func SessionGate(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing console session token", "redirect": "/login"})
			c.Abort()
			return
		}

		claims, err := manager.Validate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid", "redirect": "/login"})
			c.Abort()
			return
		}
		if claims.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: admin role required"})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), sessionIDKey, claims.SessionID)
		ctx = context.WithValue(ctx, adminIDKey, claims.AdminID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// tokenFromRequest prefers the Authorization header, then the session cookie.
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// SessionIDFromContext retrieves the console session id from the context.
func SessionIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(sessionIDKey).(string)
	if !ok {
		return "", errors.New("session id not found in context")
	}
	return id, nil
}

// AdminIDFromContext retrieves the authenticated admin id from the context.
func AdminIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(adminIDKey).(string)
	if !ok {
		return "", errors.New("admin id not found in context")
	}
	return id, nil
}
