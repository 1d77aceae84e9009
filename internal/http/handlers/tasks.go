package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListTasks returns active tasks with the caller's completion state
func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CompleteTask marks a task done and credits the reward
func (h *Handler) CompleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	balance, err := h.Tasks.Complete(c.Request.Context(), userID, taskID)
	if err != nil {
		serviceError(c, err)
		return
	}

	h.Hub.Push(userID, gin.H{"type": "balance", "balance": balance})
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
