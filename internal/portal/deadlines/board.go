// Package deadlines is the task board: managers assign dated tasks and
// assignees mark them complete.
package deadlines

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"hrportal/internal/domain/tasks"
	"hrportal/internal/portal/remote"
)

// Assignment is the form a manager fills in. Deadline is a YYYY-MM-DD date.
type Assignment = tasks.NewTaskPayload

type Board struct {
	client *remote.Client
	now    func() time.Time

	mu       sync.Mutex
	assignee int64
	loaded   bool
	tasks    []tasks.Task
	alert    remote.Alert
}

func NewBoard(client *remote.Client) *Board {
	return &Board{client: client, now: time.Now}
}

// Assign validates the assignment locally before posting it.
func (b *Board) Assign(ctx context.Context, a Assignment) (tasks.Task, error) {
	if _, issues := tasks.ValidateNewTask(a); len(issues) > 0 {
		verr := remote.NewValidationError(issues)
		b.setAlert(remote.Failure("", verr))
		return tasks.Task{}, verr
	}
	var created tasks.Task
	if err := b.client.Post(ctx, "/tasks/add", nil, a, &created); err != nil {
		b.setAlert(remote.Failure("Failed to assign task", err))
		return tasks.Task{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded && b.assignee == created.AssigneeID {
		b.tasks = append(b.tasks, created)
		sortTasks(b.tasks)
	}
	b.alert = remote.Success("Task assigned successfully!")
	return created, nil
}

// Load fetches assigneeID's tasks and makes them the board's mirror.
func (b *Board) Load(ctx context.Context, assigneeID int64) ([]tasks.Task, error) {
	var list []tasks.Task
	if err := b.client.Get(ctx, "/tasks/byUser/"+strconv.FormatInt(assigneeID, 10), nil, &list); err != nil {
		b.setAlert(remote.Failure("Failed to fetch tasks", err))
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assignee = assigneeID
	b.loaded = true
	b.tasks = list
	return cloneAll(list), nil
}

func (b *Board) Tasks() []tasks.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneAll(b.tasks)
}

// Complete marks taskID done. A task already complete on the board, or
// reported complete by the server, is a state conflict.
func (b *Board) Complete(ctx context.Context, taskID int64) (tasks.Task, error) {
	b.mu.Lock()
	for _, t := range b.tasks {
		if t.ID == taskID && t.IsComplete {
			conflict := &remote.StateConflictError{ID: taskID, Message: "task is already complete"}
			b.alert = remote.Failure("Failed to complete task", conflict)
			b.mu.Unlock()
			return tasks.Task{}, conflict
		}
	}
	b.mu.Unlock()

	var done tasks.Task
	err := b.client.Patch(ctx, fmt.Sprintf("/tasks/complete/%d", taskID), &done)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		err = asCompleteConflict(err, taskID)
		b.alert = remote.Failure("Failed to complete task", err)
		return tasks.Task{}, err
	}
	for i := range b.tasks {
		if b.tasks[i].ID == taskID {
			b.tasks[i] = done
		}
	}
	b.alert = remote.Success("Task marked as complete")
	return done, nil
}

// Overdue lists the board's incomplete tasks whose deadline has passed.
func (b *Board) Overdue() []tasks.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	var out []tasks.Task
	for _, t := range b.tasks {
		if tasks.Overdue(t, now) {
			out = append(out, t)
		}
	}
	return cloneAll(out)
}

func (b *Board) Alert() remote.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alert
}

func (b *Board) setAlert(a remote.Alert) {
	b.mu.Lock()
	b.alert = a
	b.mu.Unlock()
}

// asCompleteConflict only treats 409 as a conflict; an unknown task stays a
// not-found RemoteError.
func asCompleteConflict(err error, taskID int64) error {
	var remoteErr *remote.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Status == http.StatusConflict {
		return &remote.StateConflictError{ID: taskID, Message: remoteErr.Message}
	}
	return err
}

func sortTasks(list []tasks.Task) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Deadline.Equal(list[j].Deadline) {
			return list[i].Deadline.Before(list[j].Deadline)
		}
		return list[i].ID < list[j].ID
	})
}

func cloneAll(list []tasks.Task) []tasks.Task {
	out := make([]tasks.Task, len(list))
	for i, t := range list {
		if t.CompletedAt != nil {
			at := *t.CompletedAt
			t.CompletedAt = &at
		}
		out[i] = t
	}
	return out
}
