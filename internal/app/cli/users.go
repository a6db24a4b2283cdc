package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrportal/internal/domain/auth"
	dirmodel "hrportal/internal/domain/directory"
	"hrportal/internal/portal/directory"
)

func (a *app) usersCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage employees, managers and HR accounts"}
	cmd.AddCommand(a.usersList(), a.usersCreate(), a.usersEdit(), a.usersProfile(), a.usersRemove())
	return cmd
}

func (a *app) usersList() *cobra.Command {
	var (
		role      string
		managerID int64
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users of a role, or a manager's team",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.who(); err != nil {
				return err
			}
			gw := directory.NewGateway(a.client)
			var (
				users []dirmodel.User
				err   error
			)
			if managerID > 0 {
				users, err = gw.ListByManager(cmd.Context(), managerID)
			} else {
				users, err = gw.ListByRole(cmd.Context(), role)
			}
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "ID", "NAME", "USERNAME", "EMAIL", "PHONE", "ROLE", "HR", "MANAGER")
			for _, u := range users {
				t.row(fmt.Sprint(u.ID), u.Name, u.Username, u.Email, u.Phone, u.Role, idText(u.HRID), idText(u.ManagerID))
			}
			return t.flush()
		},
	}
	cmd.Flags().StringVar(&role, "role", auth.RoleEmployee, "Employee, Manager or HR")
	cmd.Flags().Int64Var(&managerID, "manager", 0, "list this manager's team instead")
	return cmd
}

func (a *app) usersCreate() *cobra.Command {
	var (
		draft     directory.Draft
		hrID      int64
		managerID int64
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.who(); err != nil {
				return err
			}
			draft.HRID, draft.ManagerID = optionalID(hrID), optionalID(managerID)
			created, err := directory.NewGateway(a.client).Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s created with id %d\n", created.Role, created.Username, created.ID)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&draft.Name, "name", "", "full name")
	flags.StringVar(&draft.Email, "email", "", "email address")
	flags.StringVar(&draft.Phone, "phone", "", "phone number")
	flags.StringVar(&draft.Username, "username", "", "login name")
	flags.StringVar(&draft.Password, "password", "", "initial password")
	flags.StringVar(&draft.Role, "role", auth.RoleEmployee, "Employee, Manager or HR")
	flags.Int64Var(&hrID, "hr-id", 0, "responsible HR id")
	flags.Int64Var(&managerID, "manager-id", 0, "manager id (employees only)")
	return cmd
}

// usersEdit drives an inline edit session: every changed flag updates the
// snapshot, then the whole record is committed.
func (a *app) usersEdit() *cobra.Command {
	var role string
	// flag name to edit-session field
	fields := []struct{ flag, field string }{
		{"name", "name"}, {"email", "email"}, {"phone", "phone"},
		{"username", "username"}, {"password", "password"},
		{"hr-id", "hrId"}, {"manager-id", "managerId"},
	}
	values := make(map[string]*string, len(fields))
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a user; the password must always be given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.who(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			roster := directory.NewGateway(a.client).Roster(role)
			if err := roster.Refresh(cmd.Context()); err != nil {
				return err
			}
			edit := roster.Edit()
			if err := edit.Begin(id); err != nil {
				return fmt.Errorf("%s %d: %w", roster.Role(), id, err)
			}
			for _, f := range fields {
				if cmd.Flags().Changed(f.flag) {
					if err := edit.Update(f.field, *values[f.flag]); err != nil {
						return err
					}
				}
			}
			_, err = edit.Commit(cmd.Context())
			return report(cmd, roster.Alert(), err)
		},
	}
	cmd.Flags().StringVar(&role, "role", auth.RoleEmployee, "role the user is listed under")
	for _, f := range fields {
		values[f.flag] = cmd.Flags().String(f.flag, "", "new "+f.flag)
	}
	return cmd
}

// usersProfile saves the session user's own details.
func (a *app) usersProfile() *cobra.Command {
	var p dirmodel.Profile
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update your own profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			who, err := a.who()
			if err != nil {
				return err
			}
			if _, err := directory.NewGateway(a.client).SaveProfile(cmd.Context(), who.Role, who.ID, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated successfully")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&p.FullName, "name", "", "full name")
	flags.StringVar(&p.EmailAddress, "email", "", "email address")
	flags.StringVar(&p.UserName, "username", "", "login name")
	flags.StringVar(&p.ContactNumber, "phone", "", "10 digit phone number")
	flags.StringVar(&p.NewPassword, "password", "", "password, required on every save")
	return cmd
}

func (a *app) usersRemove() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.who(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			roster := directory.NewGateway(a.client).Roster(role)
			err = roster.Remove(cmd.Context(), id)
			return report(cmd, roster.Alert(), err)
		},
	}
	cmd.Flags().StringVar(&role, "role", auth.RoleEmployee, "Employee, Manager or HR")
	return cmd
}
