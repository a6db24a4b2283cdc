package tasks

import "context"

type StoreAPI interface {
	CreateTask(ctx context.Context, task NewTask) (Task, error)
	ListTasksByAssignee(ctx context.Context, assigneeID int64) ([]Task, error)
	// CompleteTask flips is_complete false->true; an already complete task
	// yields ErrAlreadyComplete.
	CompleteTask(ctx context.Context, id int64) (Task, error)
}
