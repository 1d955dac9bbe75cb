package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestIDMiddleware додає унікальний request ID до кожного запиту.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		c.Set("request_id", reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}

// RequestIDFromContext витягує request ID з контексту Gin.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if reqID, ok := c.Get("request_id"); ok {
		if id, ok := reqID.(string); ok {
			return id
		}
	}
	return ""
}

// RateLimitMiddleware обмежує частоту запитів token bucket лімітером.
// Перевірка читає та переписує великі файли, тому запити на неї дозуються.
func RateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "забагато запитів, спробуйте пізніше",
			})
			return
		}
		c.Next()
	}
}
