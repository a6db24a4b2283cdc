// Package cli is hrctl, a command-line presentation layer over the portal
// core. It acts for the identity cached by `hrctl session start`.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hrportal/internal/platform/config"
	"hrportal/internal/portal/identity"
	"hrportal/internal/portal/remote"
)

var errNoSession = errors.New("no active session, run `hrctl session start` first")

type app struct {
	cfg      config.PortalConfig
	provider *identity.Provider
	client   *remote.Client
}

func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "hrctl",
		Short:         "Work with the HR portal from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
	}
	root.AddCommand(
		a.sessionCommand(),
		a.usersCommand(),
		a.leaveCommand(),
		a.tasksCommand(),
		a.feedbackCommand(),
	)
	return root
}

// Execute loads an optional .env file and runs the root command.
func Execute() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load .env failed", "err", err)
	}
	return NewRootCommand().Execute()
}

func (a *app) init() error {
	cfg := config.LoadPortal()
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.provider = identity.NewProvider(identity.NewFileStore(cfg.SessionFile, cfg.SessionSecret))
	a.client = remote.New(cfg.BaseURL, remote.WithTimeout(cfg.Timeout), remote.WithToken(a.provider.Token))
	return nil
}

func (a *app) who() (identity.Identity, error) {
	id, err := a.provider.Load()
	if errors.Is(err, identity.ErrNoIdentity) {
		return identity.Identity{}, errNoSession
	}
	return id, err
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// optionalID maps an unset id flag to nil.
func optionalID(v int64) *int64 {
	if v <= 0 {
		return nil
	}
	return &v
}

// report prints the alert a controller left behind and returns err.
func report(cmd *cobra.Command, alert remote.Alert, err error) error {
	if err != nil {
		return err
	}
	if alert.Kind == remote.AlertSuccess {
		fmt.Fprintln(cmd.OutOrStdout(), alert.Message)
	}
	return nil
}
