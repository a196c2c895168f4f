package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/farellandr/eventku/internal/helpers"
	"github.com/farellandr/eventku/internal/models"
)

// JWTAuthMiddleware requires a bearer access token and stores the caller's
// user id under "user_id".
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authorization header required.")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Bearer token required.")
			c.Abort()
			return
		}

		secret := os.Getenv("JWT_SECRET")
		claims, err := helpers.ParseToken(tokenString, helpers.TokenTypeAccess, secret)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// StaffRequired allows only staff users through. Must run after both the
// database and JWT middlewares.
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
			c.Abort()
			return
		}

		db, exists := c.Get("db")
		if !exists {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
			c.Abort()
			return
		}
		gormDB := db.(*gorm.DB)

		var user models.User
		if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "User not found.")
			c.Abort()
			return
		}

		if !user.IsStaff {
			helpers.RespondWithError(c, http.StatusForbidden, "Staff access required.")
			c.Abort()
			return
		}

		c.Next()
	}
}
