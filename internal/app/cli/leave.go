package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hrportal/internal/domain/leave"
	"hrportal/internal/platform/dates"
	"hrportal/internal/portal/leaveflow"
)

func (a *app) leaveCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "leave", Short: "File and decide leave requests"}
	cmd.AddCommand(
		a.leaveApply(),
		a.leaveHistory(),
		a.leaveExport(),
		a.leavePending(),
		a.leaveDecide("approve", leave.OutcomeApprove),
		a.leaveDecide("deny", leave.OutcomeDeny),
	)
	return cmd
}

func (a *app) leaveController() (*leaveflow.Controller, int64, error) {
	who, err := a.who()
	if err != nil {
		return nil, 0, err
	}
	return leaveflow.New(a.client, who), who.ID, nil
}

func (a *app) leaveApply() *cobra.Command {
	var reason, start, end string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply for leave",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, self, err := a.leaveController()
			if err != nil {
				return err
			}
			_, err = ctrl.Submit(cmd.Context(), self, reason, start, end)
			return report(cmd, ctrl.Alert(), err)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason for the leave")
	cmd.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last day, YYYY-MM-DD")
	return cmd
}

func (a *app) leaveHistory() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List your leave applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, self, err := a.leaveController()
			if err != nil {
				return err
			}
			records, err := ctrl.History(cmd.Context(), self)
			if err != nil {
				return err
			}
			return printLeave(cmd, records)
		},
	}
}

func (a *app) leaveExport() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save your leave history as a PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, self, err := a.leaveController()
			if err != nil {
				return err
			}
			pdf, err := ctrl.ExportHistory(cmd.Context(), self)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("leave-history-%d.pdf", self)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Leave history written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}

func (a *app) leavePending() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List requests waiting for your decision",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, _, err := a.leaveController()
			if err != nil {
				return err
			}
			var records []leave.Request
			for req, err := range ctrl.Pending(cmd.Context()) {
				if err != nil {
					return err
				}
				records = append(records, req)
			}
			return printLeave(cmd, records)
		},
	}
}

func (a *app) leaveDecide(verb string, outcome leave.Outcome) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: verb + " a pending leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := a.leaveController()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			err = ctrl.Decide(cmd.Context(), id, outcome)
			return report(cmd, ctrl.Alert(), err)
		},
	}
}

func printLeave(cmd *cobra.Command, records []leave.Request) error {
	t := newTable(cmd.OutOrStdout(), "ID", "REQUESTER", "FROM", "TO", "DAYS", "STATUS", "REASON")
	for _, r := range records {
		t.row(fmt.Sprint(r.ID), fmt.Sprint(r.RequesterID), dates.Format(r.StartDate), dates.Format(r.EndDate),
			fmt.Sprint(r.Days), r.Status, r.Reason)
	}
	return t.flush()
}
