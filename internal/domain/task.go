package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Task struct {
	ID          int64           `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description,omitempty"`
	Reward      decimal.Decimal `db:"reward" json:"reward"`
	TaskType    string          `db:"task_type" json:"task_type"`
	TaskURL     string          `db:"task_url" json:"task_url,omitempty"`
	IconClass   string          `db:"icon_class" json:"icon_class,omitempty"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// UserTask tracks per-user task completion. At most one row exists per
// (user, task) pair; a completed row makes further completions fail.
type UserTask struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	TaskID      int64      `db:"task_id" json:"task_id"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// TaskWithStatus is a task joined with the caller's completion state
type TaskWithStatus struct {
	Task
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
