package middleware

import (
	"reviewhub/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the authenticated user set by AuthMiddleware,
// or nil on unauthenticated routes.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
