package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FarmingStatus returns the current session state and accrued reward
func (h *Handler) FarmingStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status, err := h.Farming.Status(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// FarmingStart begins a farming session
func (h *Handler) FarmingStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Farming.Start(c.Request.Context(), userID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "started"})
}

// FarmingClaim settles the running session and pays out
func (h *Handler) FarmingClaim(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reward, balance, err := h.Farming.Claim(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	h.Hub.Push(userID, gin.H{"type": "balance", "balance": balance})
	c.JSON(http.StatusOK, gin.H{
		"reward":  reward,
		"balance": balance,
	})
}
