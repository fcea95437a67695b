package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shakirkaki-dev/fudpin-backend-v3/auth"
	"github.com/shakirkaki-dev/fudpin-backend-v3/models"
)

const userKey = "currentUser"

// AuthRequired validates the Bearer access token, resolves its subject to an
// existing user, and injects the user into the request context.
func AuthRequired(tokens *auth.Service, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := tokens.ParseAccessToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userKey, &user)
		c.Next()
	}
}

// CurrentUser extracts the authenticated user injected by AuthRequired.
func CurrentUser(c *gin.Context) *models.User {
	val, _ := c.Get(userKey)
	return val.(*models.User)
}
