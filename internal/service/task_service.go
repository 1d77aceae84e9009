package service

import (
	"context"
	"errors"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TaskService lists tasks and credits completion rewards
type TaskService struct {
	db       *pgxpool.Pool
	taskRepo *repository.TaskRepository
	rewards  *RewardService
	settings *SettingsService
}

func NewTaskService(db *pgxpool.Pool, rewards *RewardService, settings *SettingsService) *TaskService {
	return &TaskService{
		db:       db,
		taskRepo: repository.NewTaskRepository(db),
		rewards:  rewards,
		settings: settings,
	}
}

// List returns active tasks annotated with the user's completion state
func (s *TaskService) List(ctx context.Context, userID int64) ([]*domain.TaskWithStatus, error) {
	tasks, err := s.taskRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	userTasks, err := s.taskRepo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed := make(map[int64]*domain.UserTask, len(userTasks))
	for _, ut := range userTasks {
		if ut.Completed {
			completed[ut.TaskID] = ut
		}
	}

	res := make([]*domain.TaskWithStatus, 0, len(tasks))
	for _, t := range tasks {
		ts := &domain.TaskWithStatus{Task: *t}
		if ut, ok := completed[t.ID]; ok {
			ts.Completed = true
			ts.CompletedAt = ut.CompletedAt
		}
		res = append(res, ts)
	}
	return res, nil
}

// Complete marks a task done and credits its reward once. The completion
// row and the ledger entry commit together; a repeat call is rejected by
// the unique (user_id, task_id) constraint.
func (s *TaskService) Complete(ctx context.Context, userID, taskID int64) (newBalance decimal.Decimal, err error) {
	if err := s.settings.RequireEnabled(ctx, domain.SettingTasksEnabled); err != nil {
		return decimal.Zero, err
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrTaskNotFound
		}
		return decimal.Zero, err
	}
	if !task.IsActive {
		return decimal.Zero, ErrTaskNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`INSERT INTO user_tasks (user_id, task_id, completed, completed_at)
		 VALUES ($1, $2, true, now())
		 ON CONFLICT (user_id, task_id) DO NOTHING`,
		userID, taskID,
	)
	if err != nil {
		return decimal.Zero, err
	}
	if tag.RowsAffected() == 0 {
		return decimal.Zero, ErrTaskAlreadyCompleted
	}

	newBalance, err = s.rewards.CreditTx(ctx, tx, userID, task.Reward, domain.TxTypeTask,
		"Task reward: "+task.Title, map[string]any{"task_id": taskID})
	if err != nil {
		return decimal.Zero, err
	}

	if err = tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}
