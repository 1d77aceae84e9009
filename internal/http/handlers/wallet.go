package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	SolAmount decimal.Decimal `json:"sol_amount"`
}

// Deposit opens a pending deposit and returns the wallet and reference
// the user needs for the transfer.
func (h *Handler) Deposit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req DepositRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	tx, err := h.Wallet.InitiateDeposit(c.Request.Context(), userID, req.SolAmount)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

type WithdrawRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Address string          `json:"address"`
}

// Withdraw opens a pending withdrawal for admin settlement
func (h *Handler) Withdraw(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req WithdrawRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	tx, err := h.Wallet.InitiateWithdrawal(c.Request.Context(), userID, req.Amount, req.Address)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// Transactions returns the caller's recent ledger entries
func (h *Handler) Transactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	txs, err := h.Wallet.History(c.Request.Context(), userID, limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
