package tasks

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const taskColumns = `id, task_name, deadline, assignee_id, is_complete, created_at, completed_at`

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.TaskName, &t.Deadline, &t.AssigneeID, &t.IsComplete, &t.CreatedAt, &t.CompletedAt)
	return t, err
}

func (s *Store) CreateTask(ctx context.Context, task NewTask) (Task, error) {
	return scanTask(s.DB.QueryRow(ctx, `
    INSERT INTO tasks (task_name, deadline, assignee_id)
    VALUES ($1,$2,$3)
    RETURNING `+taskColumns,
		task.TaskName, task.Deadline, task.AssigneeID))
}

func (s *Store) ListTasksByAssignee(ctx context.Context, assigneeID int64) ([]Task, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+taskColumns+`
    FROM tasks
    WHERE assignee_id = $1
    ORDER BY deadline, id
  `, assigneeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) CompleteTask(ctx context.Context, id int64) (Task, error) {
	t, err := scanTask(s.DB.QueryRow(ctx, `
    UPDATE tasks
    SET is_complete = true, completed_at = now()
    WHERE id = $1 AND is_complete = false
    RETURNING `+taskColumns, id))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Task{}, err
	}

	var complete bool
	if err := s.DB.QueryRow(ctx, "SELECT is_complete FROM tasks WHERE id = $1", id).Scan(&complete); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return Task{}, ErrAlreadyComplete
}
