package middlewares

import (
	"log"
	"net/http"
	"time"

	"TeleAdmin/backend"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes an HTTP error response to the client.
// An upstream 401 has already torn the session down; the client is told to
// navigate to the login screen instead of seeing a generic failure.
func HttpError(c *gin.Context, message string, status int, err error) {
	if errors.Is(err, backend.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired", "redirect": "/login"})
		return
	}
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, gin.H{"error": message})
}

// LoggingMiddleware logs information about incoming requests.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("Request: %s %s | Status: %d | Duration: %v",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
