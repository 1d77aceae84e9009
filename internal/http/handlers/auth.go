package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"mining_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	InitData string `json:"init_data"`
	RefCode  string `json:"ref_code"`
}

// TelegramAuth validates WebApp init_data, registers the user on first
// contact and returns a session token.
func (h *Handler) TelegramAuth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if len(req.InitData) > 4096 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "init_data too long"})
		return
	}

	var tgUser *service.TelegramUser

	if h.Cfg.DevMode {
		tgUser = devModeUser(req.InitData)
	} else {
		values, ok := service.ValidateTelegramInitData(req.InitData, h.Cfg.BotToken)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or stale telegram data"})
			return
		}
		tgUser, ok = service.ParseTelegramUser(values)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user json"})
			return
		}
	}

	user, created, err := h.Auth.Login(c.Request.Context(), tgUser, req.RefCode)
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"created": created,
		"user":    user,
	})
}

// devModeUser synthesizes a Telegram user from unvalidated init_data so
// the frontend can be developed without a real bot.
func devModeUser(initData string) *service.TelegramUser {
	var userID int64 = 12345

	if idx := strings.Index(initData, "\"id\":"); idx >= 0 {
		start := idx + 5
		end := start
		for end < len(initData) && initData[end] >= '0' && initData[end] <= '9' {
			end++
		}
		if parsed, err := strconv.ParseInt(initData[start:end], 10, 64); err == nil {
			userID = parsed
		}
	}

	return &service.TelegramUser{
		ID:        userID,
		FirstName: "Test",
		Username:  "testuser" + strconv.FormatInt(userID, 10),
	}
}
