package builtin

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/secrets"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
)

// AuthOptions configures the auth command behavior.
type AuthOptions struct {
	Store  session.Store
	Output io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

func (o *AuthOptions) writer(cmd *cobra.Command) io.Writer {
	if o.Output != nil {
		return o.Output
	}
	return cmd.OutOrStdout()
}

func (o *AuthOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// NewAuthCommand creates a new auth command group.
func NewAuthCommand(opts *AuthOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect stored credentials",
		Long: `Inspect or remove the login saved between terminal sessions.

Log in from the terminal with "login --username <user> --password <pass>".

Available subcommands:
  status  - Show the stored login
  logout  - Remove the stored login`,
	}

	cmd.AddCommand(newAuthStatusCommand(opts))
	cmd.AddCommand(newAuthLogoutCommand(opts))

	return cmd
}

// newAuthStatusCommand creates the auth status subcommand.
func newAuthStatusCommand(opts *AuthOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := opts.writer(cmd)
			id, err := opts.Store.LoadIdentity(cmd.Context())
			if errors.Is(err, session.ErrNoIdentity) {
				_, _ = fmt.Fprintln(w, "Not logged in")
				return nil
			}
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(w, "Logged in as: %s\n", id.Username)
			_, _ = fmt.Fprintf(w, "User ID: %d\n", id.UserID)
			if id.Email != "" {
				_, _ = fmt.Fprintf(w, "Email: %s\n", id.Email)
			}
			_, _ = fmt.Fprintf(w, "Token: %s\n", secrets.MaskToken(id.Token))
			if exp := auth.ExpiresAt(id.Token); !exp.IsZero() {
				_, _ = fmt.Fprintf(w, "Expires: %s (in %s)\n",
					exp.Local().Format("2006-01-02 15:04"),
					exp.Sub(opts.now()).Round(time.Minute))
			}
			return nil
		},
	}
}

// newAuthLogoutCommand creates the auth logout subcommand.
func newAuthLogoutCommand(opts *AuthOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Store.ClearIdentity(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(opts.writer(cmd), "✓ Logged out")
			return nil
		},
	}
}
