package repository

import (
	"context"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, title, COALESCE(description, ''), reward, task_type,
	COALESCE(task_url, ''), COALESCE(icon_class, ''), is_active, created_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Reward, &t.TaskType,
		&t.TaskURL, &t.IconClass, &t.IsActive, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetActive returns all active tasks
func (r *TaskRepository) GetActive(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE is_active = true ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, reward, task_type, task_url, icon_class, is_active)
		 VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		 RETURNING id, created_at`,
		t.Title, t.Description, t.Reward, t.TaskType, t.TaskURL, t.IconClass, t.IsActive,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = NULLIF($2, ''), reward = $3, task_type = $4,
		     task_url = NULLIF($5, ''), icon_class = NULLIF($6, ''), is_active = $7
		 WHERE id = $8`,
		t.Title, t.Description, t.Reward, t.TaskType, t.TaskURL, t.IconClass, t.IsActive, t.ID,
	)
	return err
}

// Deactivate soft-deletes a task; historical user_tasks rows stay intact
func (r *TaskRepository) Deactivate(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE tasks SET is_active = false WHERE id = $1`, id)
	return err
}

// GetUserTasks returns the caller's completion rows
func (r *TaskRepository) GetUserTasks(ctx context.Context, userID int64) ([]*domain.UserTask, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, task_id, completed, completed_at, created_at
		 FROM user_tasks WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.UserTask
	for rows.Next() {
		var ut domain.UserTask
		if err := rows.Scan(&ut.ID, &ut.UserID, &ut.TaskID, &ut.Completed, &ut.CompletedAt, &ut.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &ut)
	}
	return res, rows.Err()
}
