package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user's profile
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.Auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
