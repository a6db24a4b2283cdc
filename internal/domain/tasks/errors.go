package tasks

import "errors"

var (
	ErrNotFound        = errors.New("task not found")
	ErrAlreadyComplete = errors.New("task already complete")
	ErrInvalidAssignee = errors.New("assignee does not exist")
)
