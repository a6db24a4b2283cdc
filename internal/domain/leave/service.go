package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hrportal/internal/domain/auth"
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

// Apply files a Pending request for app.RequesterID, who must hold
// app.RequesterRole and have an approver role above them.
func (s *Service) Apply(ctx context.Context, app Application) (Request, error) {
	if _, ok := auth.ApproverRole(app.RequesterRole); !ok {
		return Request{}, ErrRequester
	}
	if err := s.checkRequester(ctx, app.RequesterID, app.RequesterRole); err != nil {
		return Request{}, err
	}

	days, err := CalculateDays(app.StartDate, app.EndDate)
	if err != nil {
		return Request{}, fmt.Errorf("calculate days: %w", err)
	}
	req, err := s.Store.CreateLeaveRequest(ctx, app, days)
	if err != nil {
		return Request{}, err
	}
	slog.Info("leave request filed", "requestId", req.ID, "requesterId", req.RequesterID, "role", req.RequesterRole, "days", days)
	return req, nil
}

func (s *Service) History(ctx context.Context, requesterRole string, requesterID int64) ([]Request, error) {
	if err := s.checkRequester(ctx, requesterID, requesterRole); err != nil {
		return nil, err
	}
	return s.Store.ListLeaveByRequester(ctx, requesterID)
}

// Pending lists requests awaiting approverRole. When the caller is a known
// manager the list is narrowed to their own team.
func (s *Service) Pending(ctx context.Context, approverRole string, caller *auth.UserContext) ([]Request, error) {
	requesterRole, ok := auth.RequesterRole(approverRole)
	if !ok {
		return nil, ErrRequester
	}
	return s.Store.ListPendingLeave(ctx, requesterRole, teamOf(approverRole, caller))
}

// teamOf returns the manager whose team bounds a manager caller's view.
func teamOf(approverRole string, caller *auth.UserContext) *int64 {
	if caller == nil || caller.Role != auth.RoleManager || approverRole != auth.RoleManager {
		return nil
	}
	id := caller.UserID
	return &id
}

// Decide applies outcome to request id. A manager caller may only decide
// requests from their own team; anything else reads as not found.
func (s *Service) Decide(ctx context.Context, approverRole string, id int64, outcome Outcome, caller *auth.UserContext) (Request, error) {
	requesterRole, ok := auth.RequesterRole(approverRole)
	if !ok {
		return Request{}, ErrRequester
	}
	req, err := s.Store.DecideLeaveRequest(ctx, id, requesterRole, teamOf(approverRole, caller), outcome)
	if err != nil {
		return Request{}, err
	}
	slog.Info("leave request decided", "requestId", req.ID, "approverRole", approverRole, "status", req.Status)
	return req, nil
}

func (s *Service) checkRequester(ctx context.Context, id int64, role string) error {
	if s.Users == nil {
		return nil
	}
	user, err := s.Users.Get(ctx, id)
	if errors.Is(err, directory.ErrNotFound) {
		return ErrRequester
	}
	if err != nil {
		return err
	}
	if user.Role != role {
		return ErrRequester
	}
	return nil
}
