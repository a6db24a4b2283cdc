package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrportal/internal/portal/feedback"
)

func (a *app) feedbackCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "feedback", Short: "Send and read feedback"}
	cmd.AddCommand(a.feedbackList(), a.feedbackSend(), a.feedbackRead())
	return cmd
}

func (a *app) feedbackList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the feedback inbox",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.who(); err != nil {
				return err
			}
			items, err := feedback.NewInbox(a.client).Load(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "ID", "FROM", "RECEIVED", "MESSAGE")
			for _, item := range items {
				t.row(fmt.Sprint(item.ID), item.FromName, item.CreatedAt.Format("2006-01-02 15:04"), item.Message)
			}
			return t.flush()
		},
	}
}

func (a *app) feedbackSend() *cobra.Command {
	var from, message string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send feedback to HR",
		RunE: func(cmd *cobra.Command, _ []string) error {
			who, err := a.who()
			if err != nil {
				return err
			}
			if from == "" {
				from = who.Name
			}
			inbox := feedback.NewInbox(a.client)
			_, err = inbox.Send(cmd.Context(), from, message)
			return report(cmd, inbox.Alert(), err)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "sender name, the session name by default")
	cmd.Flags().StringVarP(&message, "message", "m", "", "feedback text")
	return cmd
}

func (a *app) feedbackRead() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark feedback as read, which deletes it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.who(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			inbox := feedback.NewInbox(a.client)
			err = inbox.MarkRead(cmd.Context(), id)
			return report(cmd, inbox.Alert(), err)
		},
	}
}
