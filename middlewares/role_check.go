package middlewares

import (
	"errors"
	"net/http"

	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
)

// RequireRoles aborts with 403 unless the caller carries one of the given roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient permissions"))
		c.Abort()
	}
}
