package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrportal/internal/platform/dates"
	"hrportal/internal/portal/deadlines"
)

func (a *app) tasksCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "tasks", Short: "Assign and complete tasks"}
	cmd.AddCommand(a.tasksAssign(), a.tasksList(), a.tasksComplete())
	return cmd
}

func (a *app) tasksAssign() *cobra.Command {
	var in deadlines.Assignment
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a task to an employee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.who(); err != nil {
				return err
			}
			board := deadlines.NewBoard(a.client)
			_, err := board.Assign(cmd.Context(), in)
			return report(cmd, board.Alert(), err)
		},
	}
	cmd.Flags().StringVar(&in.TaskName, "name", "", "task name")
	cmd.Flags().StringVar(&in.Deadline, "deadline", "", "deadline, YYYY-MM-DD")
	cmd.Flags().Int64Var(&in.AssigneeID, "assignee", 0, "employee id")
	return cmd
}

func (a *app) tasksList() *cobra.Command {
	var assignee int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks of an assignee, yours by default",
		RunE: func(cmd *cobra.Command, _ []string) error {
			who, err := a.who()
			if err != nil {
				return err
			}
			if assignee <= 0 {
				assignee = who.ID
			}
			board := deadlines.NewBoard(a.client)
			list, err := board.Load(cmd.Context(), assignee)
			if err != nil {
				return err
			}
			overdue := map[int64]bool{}
			for _, task := range board.Overdue() {
				overdue[task.ID] = true
			}
			t := newTable(cmd.OutOrStdout(), "ID", "TASK", "DEADLINE", "STATE")
			for _, task := range list {
				state := "open"
				switch {
				case task.IsComplete:
					state = "complete"
				case overdue[task.ID]:
					state = "overdue"
				}
				t.row(fmt.Sprint(task.ID), task.TaskName, dates.Format(task.Deadline), state)
			}
			return t.flush()
		},
	}
	cmd.Flags().Int64Var(&assignee, "assignee", 0, "employee id")
	return cmd
}

func (a *app) tasksComplete() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.who(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			board := deadlines.NewBoard(a.client)
			_, err = board.Complete(cmd.Context(), id)
			return report(cmd, board.Alert(), err)
		},
	}
}
