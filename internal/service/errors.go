package service

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrBoostNotFound        = errors.New("boost not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrFarmingActive        = errors.New("farming already active")
	ErrFarmingNotActive     = errors.New("farming not active")
	ErrClaimTooEarly        = errors.New("farming period not finished")
	ErrTaskAlreadyCompleted = errors.New("task already completed")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrFeatureDisabled      = errors.New("feature disabled")
	ErrBelowMinimum         = errors.New("amount below minimum")
	ErrInvalidAddress       = errors.New("invalid wallet address")
	ErrInvalidStatusChange  = errors.New("invalid status transition")
)
