package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"hrportal/internal/domain/directory"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/tasks"
)

func TestDeleteUserClearsLinksAndOwnedRows(t *testing.T) {
	ctx := context.Background()
	s := New()
	hr, _ := s.CreateUser(ctx, directory.NewUser{Username: "hr", Role: "HR"}, "hash")
	mgr, _ := s.CreateUser(ctx, directory.NewUser{Username: "mgr", Role: "Manager", HRID: &hr.ID}, "hash")
	emp, _ := s.CreateUser(ctx, directory.NewUser{Username: "emp", Role: "Employee", HRID: &hr.ID, ManagerID: &mgr.ID}, "hash")
	req, _ := s.CreateLeaveRequest(ctx, leave.Application{RequesterID: emp.ID, RequesterRole: "Employee"}, 1)
	if _, err := s.CreateTask(ctx, tasks.NewTask{TaskName: "t", Deadline: time.Now(), AssigneeID: emp.ID}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := s.DeleteUser(ctx, mgr.ID); err != nil {
		t.Fatalf("delete manager: %v", err)
	}
	got, err := s.GetUser(ctx, emp.ID)
	if err != nil {
		t.Fatalf("get employee: %v", err)
	}
	if got.ManagerID != nil {
		t.Fatalf("expected manager link cleared, got %v", *got.ManagerID)
	}

	if err := s.DeleteUser(ctx, emp.ID); err != nil {
		t.Fatalf("delete employee: %v", err)
	}
	if _, err := s.GetLeaveRequest(ctx, req.ID); !errors.Is(err, leave.ErrNotFound) {
		t.Fatalf("expected leave removed with requester, got %v", err)
	}
	if list, _ := s.ListTasksByAssignee(ctx, emp.ID); len(list) != 0 {
		t.Fatalf("expected tasks removed with assignee, got %d", len(list))
	}
}

func TestReturnedUsersDoNotAliasStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	hr, _ := s.CreateUser(ctx, directory.NewUser{Username: "hr", Role: "HR"}, "hash")
	mgr, _ := s.CreateUser(ctx, directory.NewUser{Username: "mgr", Role: "Manager", HRID: &hr.ID}, "hash")

	*mgr.HRID = 999
	again, _ := s.GetUser(ctx, mgr.ID)
	if *again.HRID != hr.ID {
		t.Fatalf("store mutated through returned pointer: %d", *again.HRID)
	}
}

func TestDecideLeaveRequestGuards(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	req, _ := s.CreateLeaveRequest(ctx, leave.Application{RequesterID: 1, RequesterRole: "Employee"}, 2)

	if _, err := s.DecideLeaveRequest(ctx, req.ID, "Manager", nil, leave.OutcomeApprove); !errors.Is(err, leave.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other role, got %v", err)
	}
	if _, err := s.DecideLeaveRequest(ctx, req.ID, "Employee", nil, leave.Outcome("maybe")); !errors.Is(err, leave.ErrInvalidOutcome) {
		t.Fatalf("expected ErrInvalidOutcome, got %v", err)
	}
	decided, err := s.DecideLeaveRequest(ctx, req.ID, "Employee", nil, leave.OutcomeDeny)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != leave.StatusDenied || !decided.DecidedAt.Equal(now) {
		t.Fatalf("unexpected decision: %+v", decided)
	}
	if _, err := s.DecideLeaveRequest(ctx, req.ID, "Employee", nil, leave.OutcomeApprove); !errors.Is(err, leave.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	pending, _ := s.ListPendingLeave(ctx, "Employee", nil)
	if len(pending) != 0 {
		t.Fatalf("expected no pending requests, got %d", len(pending))
	}
}

func TestDecideLeaveRequestTeamScope(t *testing.T) {
	ctx := context.Background()
	s := New()
	manager, _ := s.CreateUser(ctx, directory.NewUser{Username: "m", Role: "Manager"}, "h")
	other, _ := s.CreateUser(ctx, directory.NewUser{Username: "o", Role: "Manager"}, "h")
	staff, _ := s.CreateUser(ctx, directory.NewUser{Username: "e", Role: "Employee", ManagerID: &manager.ID}, "h")
	req, _ := s.CreateLeaveRequest(ctx, leave.Application{RequesterID: staff.ID, RequesterRole: "Employee"}, 1)

	if _, err := s.DecideLeaveRequest(ctx, req.ID, "Employee", &other.ID, leave.OutcomeApprove); !errors.Is(err, leave.ErrNotFound) {
		t.Fatalf("expected ErrNotFound outside the team, got %v", err)
	}
	if _, err := s.DecideLeaveRequest(ctx, req.ID, "Employee", &manager.ID, leave.OutcomeApprove); err != nil {
		t.Fatalf("decide within team: %v", err)
	}
}
