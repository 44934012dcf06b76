package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every controller maps its own errors onto the {success, message, ...}
// envelope; there is no centralized error middleware.

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func respondServerError(c *gin.Context, area, message string, err error) {
	log.Printf("[%s] [ERROR] %s: %v", area, message, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
	}
}
