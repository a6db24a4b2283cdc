package tasks

import (
	"strings"
	"time"

	"hrportal/internal/platform/dates"
)

func ValidateNewTask(p NewTaskPayload) (NewTask, map[string]string) {
	issues := map[string]string{}
	task := NewTask{TaskName: strings.TrimSpace(p.TaskName), AssigneeID: p.AssigneeID}
	if task.TaskName == "" {
		issues["taskName"] = "Task name is required"
	}
	raw := strings.TrimSpace(p.Deadline)
	if raw == "" {
		issues["deadline"] = "Deadline is required"
	} else if deadline, err := dates.Parse(raw); err != nil {
		issues["deadline"] = "Deadline must be a valid date"
	} else {
		task.Deadline = dates.Day(deadline)
	}
	if p.AssigneeID <= 0 {
		issues["assigneeId"] = "Employee is required"
	}
	return task, issues
}

// Overdue reports whether an incomplete task's deadline is before today.
func Overdue(t Task, now time.Time) bool {
	return !t.IsComplete && dates.Day(t.Deadline).Before(dates.Day(now))
}
