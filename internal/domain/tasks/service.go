package tasks

import (
	"context"
	"errors"

	"hrportal/internal/domain/directory"
)

type UserLookup interface {
	Get(ctx context.Context, id int64) (directory.User, error)
}

type Service struct {
	Store StoreAPI
	Users UserLookup
}

func NewService(store StoreAPI, users UserLookup) *Service {
	return &Service{Store: store, Users: users}
}

func (s *Service) Assign(ctx context.Context, task NewTask) (Task, error) {
	if s.Users != nil {
		if _, err := s.Users.Get(ctx, task.AssigneeID); err != nil {
			if errors.Is(err, directory.ErrNotFound) {
				return Task{}, ErrInvalidAssignee
			}
			return Task{}, err
		}
	}
	return s.Store.CreateTask(ctx, task)
}

func (s *Service) ListForAssignee(ctx context.Context, assigneeID int64) ([]Task, error) {
	return s.Store.ListTasksByAssignee(ctx, assigneeID)
}

func (s *Service) Complete(ctx context.Context, id int64) (Task, error) {
	return s.Store.CompleteTask(ctx, id)
}
