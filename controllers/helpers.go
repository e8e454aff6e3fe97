package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/engineeringdigest/buildtrack-app/services"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid id: "+c.Param(param)))
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps typed service errors to status codes.
func respondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &notFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &conflict):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
