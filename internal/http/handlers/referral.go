package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReferralStats returns per-level counts, earnings and the referral code
func (h *Handler) ReferralStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	overview, err := h.Referral.Overview(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ReferralLink returns the shareable bot start link
func (h *Handler) ReferralLink(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"code": user.ReferralCode,
		"link": fmt.Sprintf("https://t.me/%s?start=%s", h.Cfg.BotUsername, user.ReferralCode),
	})
}

// ReferralList returns the user's direct and indirect referrals
func (h *Handler) ReferralList(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	referrals, err := h.Referral.Referrals(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"referrals": referrals})
}
