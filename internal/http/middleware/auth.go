package middleware

import (
	"net/http"
	"strings"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/services"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// Authenticate verifies the Bearer access token and loads the user behind
// it into the context. A missing header is 401, a bad token 403, and a
// deleted or deactivated account 404.
func Authenticate(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is required"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		svc := services.AuthService{Env: env, RequestID: GetRequestID(c)}
		claims, err := svc.ParseAccessToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired access token."})
			return
		}

		user, err := repositories.UserRepository{}.GetByID(claims.UserID)
		if err != nil || !user.IsActive {
			if err != nil && !domain.IsNotFound(err) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong. Try again later."})
				return
			}
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated user
// holds one of the given roles. Runs after Authenticate.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is required"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You don't have permission to access this resource"})
	}
}

// CurrentUser extracts the authenticated user set by Authenticate.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
