package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ecommerce-backend/internal/auth"
	"ecommerce-backend/internal/models"
)

// RequireSignIn validates the bearer token and injects the userId into the
// context. The client sends the raw token in the Authorization header, without
// a "Bearer " prefix.
func RequireSignIn(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "UnAuthorized Access",
			})
			return
		}

		userID, err := auth.ParseToken(raw, secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "UnAuthorized Access",
			})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}

// IsAdmin loads the signed-in user and rejects anyone whose role is not admin.
// Runs after RequireSignIn.
func IsAdmin(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "UnAuthorized Access",
			})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[AUTH] [ERROR] admin check lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Error in admin middleware",
			})
			return
		}

		if user.Role != models.RoleAdmin {
			log.Println("[AUTH] [ERROR] non-admin access attempt:", user.Email)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "UnAuthorized Access",
			})
			return
		}

		c.Next()
	}
}
