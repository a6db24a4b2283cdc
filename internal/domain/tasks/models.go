package tasks

import "time"

type Task struct {
	ID          int64      `json:"id"`
	TaskName    string     `json:"taskName"`
	Deadline    time.Time  `json:"deadline"`
	AssigneeID  int64      `json:"assigneeId"`
	IsComplete  bool       `json:"isComplete"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewTaskPayload is the wire form a manager posts to assign a task.
type NewTaskPayload struct {
	TaskName   string `json:"taskName"`
	Deadline   string `json:"deadline"`
	AssigneeID int64  `json:"assigneeId"`
}

type NewTask struct {
	TaskName   string
	Deadline   time.Time
	AssigneeID int64
}
