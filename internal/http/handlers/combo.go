package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DailyCombo returns today's combo and the caller's progress
func (h *Handler) DailyCombo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status, err := h.Combo.Today(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if status == nil {
		c.JSON(http.StatusOK, gin.H{"combo": nil})
		return
	}
	c.JSON(http.StatusOK, status)
}
