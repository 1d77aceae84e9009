package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLogin exchanges the admin password for an admin token
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Cfg.AdminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, err := service.GenerateAdminJWT()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.Admin.Stats(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) AdminUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	users, err := h.Admin.Users(c.Request.Context(), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) AdminTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	txs, err := h.Admin.Transactions(c.Request.Context(), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

type SettleRequest struct {
	Status domain.TransactionStatus `json:"status"`
}

// AdminSettleTransaction moves a pending deposit or withdrawal to a
// terminal status, crediting or debiting the user on completion.
func (h *Handler) AdminSettleTransaction(c *gin.Context) {
	txID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	var req SettleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	tx, err := h.Admin.SettleTransaction(c.Request.Context(), txID, req.Status)
	if err != nil {
		serviceError(c, err)
		return
	}

	h.Hub.Push(tx.UserID, gin.H{"type": "transaction", "transaction": tx})
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

func (h *Handler) AdminCreateTask(c *gin.Context) {
	var task domain.Task
	if err := c.BindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	task.IsActive = true

	if err := h.Admin.CreateTask(c.Request.Context(), &task); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *Handler) AdminUpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var task domain.Task
	if err := c.BindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	task.ID = taskID

	if err := h.Admin.UpdateTask(c.Request.Context(), &task); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *Handler) AdminDeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.Admin.DeactivateTask(c.Request.Context(), taskID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

func (h *Handler) AdminCreateBoost(c *gin.Context) {
	var boost domain.Boost
	if err := c.BindJSON(&boost); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	boost.IsActive = true

	if err := h.Admin.CreateBoost(c.Request.Context(), &boost); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boost": boost})
}

func (h *Handler) AdminDeleteBoost(c *gin.Context) {
	boostID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid boost id"})
		return
	}

	if err := h.Admin.DeactivateBoost(c.Request.Context(), boostID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

func (h *Handler) AdminSettings(c *gin.Context) {
	settings, err := h.Settings.GetAll(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type SettingRequest struct {
	Value any `json:"value"`
}

func (h *Handler) AdminSetSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing key"})
		return
	}

	var req SettingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	setting, err := h.Settings.Set(c.Request.Context(), key, req.Value)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"setting": setting})
}
