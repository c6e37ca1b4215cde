package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/n0m3l4c000nt35/cyber-bloodline/internal/devserver"
	"github.com/n0m3l4c000nt35/cyber-bloodline/internal/logging"
)

func newServeDevCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-dev",
		Short: "Run an in-memory API server for local development",
		Long: `Serve the social network API from memory on a local address.

Data is lost when the server stops. Point the terminal at it with
--api-url http://<addr>/api.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = a.cfg.DevServer.Addr
			}

			logger := logging.New(cmd.ErrOrStderr(), a.cfg.Log.SlogLevel())
			srv, err := devserver.New(ctx, devserver.Config{
				JWTSecret: []byte(a.cfg.DevServer.JWTSecret),
				TokenTTL:  a.cfg.DevServer.TokenTTL,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return srv.ListenAndServe(ctx, addr, func(bound net.Addr) {
				_, _ = fmt.Fprintf(out, "Dev server listening on http://%s/api\n", bound)
				_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from devserver.addr)")

	return cmd
}
