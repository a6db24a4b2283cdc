// Package memory keeps every portal entity in process memory. It backs the
// STORE_DRIVER=memory mode and the HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"hrportal/internal/domain/directory"
	"hrportal/internal/domain/feedback"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/tasks"
)

type userRecord struct {
	user         directory.User
	passwordHash string
}

type Store struct {
	mu       sync.Mutex
	now      func() time.Time
	nextID   map[string]int64
	users    map[int64]userRecord
	requests map[int64]leave.Request
	tasks    map[int64]tasks.Task
	feedback map[int64]feedback.Item
}

var (
	_ directory.StoreAPI = (*Store)(nil)
	_ leave.StoreAPI     = (*Store)(nil)
	_ tasks.StoreAPI     = (*Store)(nil)
	_ feedback.StoreAPI  = (*Store)(nil)
)

func New() *Store {
	return &Store{
		now:      time.Now,
		nextID:   map[string]int64{},
		users:    map[int64]userRecord{},
		requests: map[int64]leave.Request{},
		tasks:    map[int64]tasks.Task{},
		feedback: map[int64]feedback.Item{},
	}
}

func (s *Store) id(kind string) int64 {
	s.nextID[kind]++
	return s.nextID[kind]
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneUser(u directory.User) directory.User {
	u.HRID = copyID(u.HRID)
	u.ManagerID = copyID(u.ManagerID)
	return u
}

func (s *Store) ListUsersByRole(_ context.Context, role string) ([]directory.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterUsers(func(u directory.User) bool { return u.Role == role }), nil
}

func (s *Store) ListUsersByManager(_ context.Context, managerID int64) ([]directory.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterUsers(func(u directory.User) bool {
		return u.ManagerID != nil && *u.ManagerID == managerID
	}), nil
}

func (s *Store) filterUsers(keep func(directory.User) bool) []directory.User {
	out := []directory.User{}
	for _, rec := range s.users {
		if keep(rec.user) {
			out = append(out, cloneUser(rec.user))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetUser(_ context.Context, id int64) (directory.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return directory.User{}, directory.ErrNotFound
	}
	return cloneUser(rec.user), nil
}

func (s *Store) usernameTaken(username string, except int64) bool {
	for id, rec := range s.users {
		if id != except && rec.user.Username == username {
			return true
		}
	}
	return false
}

func (s *Store) CreateUser(_ context.Context, candidate directory.NewUser, passwordHash string) (directory.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usernameTaken(candidate.Username, 0) {
		return directory.User{}, directory.ErrUsernameTaken
	}
	now := s.now().UTC()
	u := directory.User{
		ID:        s.id("user"),
		Name:      candidate.Name,
		Email:     candidate.Email,
		Phone:     candidate.Phone,
		Username:  candidate.Username,
		Role:      candidate.Role,
		HRID:      copyID(candidate.HRID),
		ManagerID: copyID(candidate.ManagerID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = userRecord{user: u, passwordHash: passwordHash}
	return cloneUser(u), nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, patch directory.UserPatch, passwordHash string) (directory.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return directory.User{}, directory.ErrNotFound
	}
	if s.usernameTaken(patch.Username, id) {
		return directory.User{}, directory.ErrUsernameTaken
	}
	rec.user.Name = patch.Name
	rec.user.Email = patch.Email
	rec.user.Phone = patch.Phone
	rec.user.Role = patch.Role
	rec.user.Username = patch.Username
	rec.user.HRID = copyID(patch.HRID)
	rec.user.ManagerID = copyID(patch.ManagerID)
	rec.user.UpdatedAt = s.now().UTC()
	rec.passwordHash = passwordHash
	s.users[id] = rec
	return cloneUser(rec.user), nil
}

// DeleteUser mirrors the relational schema: links to the removed user are
// cleared and their leave and tasks are dropped.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return directory.ErrNotFound
	}
	delete(s.users, id)
	for otherID, rec := range s.users {
		if rec.user.HRID != nil && *rec.user.HRID == id {
			rec.user.HRID = nil
		}
		if rec.user.ManagerID != nil && *rec.user.ManagerID == id {
			rec.user.ManagerID = nil
		}
		s.users[otherID] = rec
	}
	for reqID, req := range s.requests {
		if req.RequesterID == id {
			delete(s.requests, reqID)
		}
	}
	for taskID, t := range s.tasks {
		if t.AssigneeID == id {
			delete(s.tasks, taskID)
		}
	}
	return nil
}

// PasswordHash exposes the stored hash for credential checks.
func (s *Store) PasswordHash(id int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	return rec.passwordHash, ok
}

func cloneRequest(r leave.Request) leave.Request {
	if r.DecidedAt != nil {
		at := *r.DecidedAt
		r.DecidedAt = &at
	}
	return r
}

func (s *Store) CreateLeaveRequest(_ context.Context, app leave.Application, days float64) (leave.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req := leave.Request{
		ID:            s.id("leave"),
		RequesterID:   app.RequesterID,
		RequesterRole: app.RequesterRole,
		Reason:        app.Reason,
		StartDate:     app.StartDate,
		EndDate:       app.EndDate,
		Days:          days,
		Status:        leave.StatusPending,
		CreatedAt:     s.now().UTC(),
	}
	s.requests[req.ID] = req
	return cloneRequest(req), nil
}

func (s *Store) GetLeaveRequest(_ context.Context, id int64) (leave.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrNotFound
	}
	return cloneRequest(req), nil
}

func (s *Store) ListLeaveByRequester(_ context.Context, requesterID int64) ([]leave.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []leave.Request{}
	for _, req := range s.requests {
		if req.RequesterID == requesterID {
			out = append(out, cloneRequest(req))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) reportsTo(userID, managerID int64) bool {
	rec, ok := s.users[userID]
	return ok && rec.user.ManagerID != nil && *rec.user.ManagerID == managerID
}

func (s *Store) ListPendingLeave(_ context.Context, requesterRole string, managerID *int64) ([]leave.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []leave.Request{}
	for _, req := range s.requests {
		if req.Status != leave.StatusPending || req.RequesterRole != requesterRole {
			continue
		}
		if managerID != nil && !s.reportsTo(req.RequesterID, *managerID) {
			continue
		}
		out = append(out, cloneRequest(req))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DecideLeaveRequest(_ context.Context, id int64, requesterRole string, managerID *int64, outcome leave.Outcome) (leave.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok || req.RequesterRole != requesterRole {
		return leave.Request{}, leave.ErrNotFound
	}
	if managerID != nil && !s.reportsTo(req.RequesterID, *managerID) {
		return leave.Request{}, leave.ErrNotFound
	}
	next, err := leave.Transition(req.Status, outcome)
	if err != nil {
		return leave.Request{}, err
	}
	at := s.now().UTC()
	req.Status = next
	req.DecidedAt = &at
	s.requests[id] = req
	return cloneRequest(req), nil
}

func cloneTask(t tasks.Task) tasks.Task {
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		t.CompletedAt = &at
	}
	return t
}

func (s *Store) CreateTask(_ context.Context, task tasks.NewTask) (tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := tasks.Task{
		ID:         s.id("task"),
		TaskName:   task.TaskName,
		Deadline:   task.Deadline,
		AssigneeID: task.AssigneeID,
		CreatedAt:  s.now().UTC(),
	}
	s.tasks[t.ID] = t
	return cloneTask(t), nil
}

func (s *Store) ListTasksByAssignee(_ context.Context, assigneeID int64) ([]tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []tasks.Task{}
	for _, t := range s.tasks {
		if t.AssigneeID == assigneeID {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Deadline.Equal(out[j].Deadline) {
			return out[i].ID < out[j].ID
		}
		return out[i].Deadline.Before(out[j].Deadline)
	})
	return out, nil
}

func (s *Store) CompleteTask(_ context.Context, id int64) (tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return tasks.Task{}, tasks.ErrNotFound
	}
	if t.IsComplete {
		return tasks.Task{}, tasks.ErrAlreadyComplete
	}
	at := s.now().UTC()
	t.IsComplete = true
	t.CompletedAt = &at
	s.tasks[id] = t
	return cloneTask(t), nil
}

func (s *Store) CreateFeedback(_ context.Context, item feedback.NewItem) (feedback.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := feedback.Item{
		ID:        s.id("feedback"),
		FromName:  item.FromName,
		Message:   item.Message,
		CreatedAt: s.now().UTC(),
	}
	s.feedback[out.ID] = out
	return out, nil
}

func (s *Store) ListFeedback(_ context.Context) ([]feedback.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]feedback.Item, 0, len(s.feedback))
	for _, item := range s.feedback {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) DeleteFeedback(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.feedback[id]; !ok {
		return feedback.ErrNotFound
	}
	delete(s.feedback, id)
	return nil
}
