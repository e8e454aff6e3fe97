package controllers

import (
	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/gin-gonic/gin"
)

// identityFromContext rebuilds the authenticated caller from what the auth
// middleware stored. Services receive this value explicitly; nothing below
// the controllers reads request-scoped state.
func identityFromContext(c *gin.Context) models.Identity {
	id := models.Identity{}
	if v, ok := c.Get("userID"); ok {
		if userID, ok := v.(uint); ok {
			id.UserID = userID
		}
	}
	if v, ok := c.Get("username"); ok {
		if username, ok := v.(string); ok {
			id.Username = username
		}
	}
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			id.Role = role
		}
	}
	return id
}
