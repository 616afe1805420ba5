package handlers

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/openedu/conductor-api/internal/errors"
	"github.com/openedu/conductor-api/internal/middleware"
)

// currentUserID returns the authenticated user, responding 401 when there is none
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Missing authorization token.")
		return "", false
	}
	return userID, true
}

// respondBindError reports a malformed or incomplete request
func respondBindError(c *gin.Context, err error) {
	apierrors.BadRequestWithDetails(c, "Missing or invalid request fields.", err.Error())
}
