package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrportal/internal/domain/auth"
	"hrportal/internal/portal/identity"
)

func (a *app) sessionCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "session", Short: "Manage the cached session identity"}

	var (
		who       identity.Identity
		hrID      int64
		managerID int64
	)
	start := &cobra.Command{
		Use:   "start",
		Short: "Cache the identity hrctl acts for",
		RunE: func(cmd *cobra.Command, _ []string) error {
			who.Role = auth.NormalizeRole(who.Role)
			if who.ID <= 0 || !auth.ValidRole(who.Role) {
				return fmt.Errorf("--id and a --role of Employee, Manager or HR are required")
			}
			who.HRID, who.ManagerID = optionalID(hrID), optionalID(managerID)
			if err := a.provider.Start(who); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session started for %s (%s)\n", who.Name, who.Role)
			return nil
		},
	}
	start.Flags().Int64Var(&who.ID, "id", 0, "user id")
	start.Flags().StringVar(&who.Name, "name", "", "display name")
	start.Flags().StringVar(&who.Role, "role", "", "Employee, Manager or HR")
	start.Flags().Int64Var(&hrID, "hr-id", 0, "HR id of the user")
	start.Flags().Int64Var(&managerID, "manager-id", 0, "manager id of the user")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the session identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			who, err := a.who()
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "ID", "NAME", "ROLE", "HR", "MANAGER")
			t.row(fmt.Sprint(who.ID), who.Name, who.Role, idText(who.HRID), idText(who.ManagerID))
			return t.flush()
		},
	}

	end := &cobra.Command{
		Use:   "end",
		Short: "Forget the cached identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.provider.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session ended")
			return nil
		},
	}

	cmd.AddCommand(start, show, end)
	return cmd
}
