package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListBoosts returns the boost catalog with the caller's ownership state
func (h *Handler) ListBoosts(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	boosts, err := h.Boosts.List(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boosts": boosts})
}

// PurchaseBoost debits the cost and applies the boost
func (h *Handler) PurchaseBoost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	boostID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid boost id"})
		return
	}

	balance, err := h.Boosts.Purchase(c.Request.Context(), userID, boostID)
	if err != nil {
		serviceError(c, err)
		return
	}

	h.Hub.Push(userID, gin.H{"type": "balance", "balance": balance})
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
