// Package jobs runs the periodic maintenance work: cancelling stale
// pending transactions and retiring yesterday's daily combo.
package jobs

import (
	"context"
	"time"

	"mining_webapp/internal/logger"
	"mining_webapp/internal/repository"
	"mining_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// StalePendingHours is how long a pending deposit or withdrawal may sit
// unsettled before it is cancelled automatically.
const StalePendingHours = 48

type Scheduler struct {
	cron            *cron.Cron
	transactionRepo *repository.TransactionRepository
	combos          *service.ComboService
}

func NewScheduler(db *pgxpool.Pool) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		transactionRepo: repository.NewTransactionRepository(db),
		combos:          service.NewComboService(db),
	}
}

// Start registers the jobs and launches the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.cancelStalePending); err != nil {
		return err
	}
	// Shortly after midnight UTC, retire past combos
	if _, err := s.cron.AddFunc("5 0 * * *", s.expireCombos); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("scheduler started")
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("scheduler shutdown timeout")
	}
}

func (s *Scheduler) cancelStalePending() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.transactionRepo.CancelStalePending(ctx, StalePendingHours)
	if err != nil {
		logger.Error("cancel stale pending failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("cancelled stale pending transactions", "count", n)
	}
}

func (s *Scheduler) expireCombos() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.combos.ExpireOld(ctx)
	if err != nil {
		logger.Error("combo expiry failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("retired old daily combos", "count", n)
	}
}
