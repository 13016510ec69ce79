package main

import (
	"fmt"
	"os"

	"github.com/matheus3301/wpnew/internal/daemon"
	"github.com/matheus3301/wpnew/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		sessionFlag string
		socketFlag  string
		levelFlag   string
	)
	cmd := &cobra.Command{
		Use:           "wpnewd",
		Short:         "Per-session wpnew daemon",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessionName, err := session.Resolve(sessionFlag)
			if err != nil {
				return err
			}
			if err := session.EnsureDir(sessionName); err != nil {
				return fmt.Errorf("create session dir: %w", err)
			}

			app := fx.New(
				fx.WithLogger(daemon.FxLogger),
				daemon.Module(daemon.Params{
					SessionName: sessionName,
					SocketPath:  socketFlag,
					LogLevel:    levelFlag,
				}),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionFlag, "session", "", "session name (overrides config default)")
	cmd.Flags().StringVar(&socketFlag, "socket", "", "unix socket path (defaults to the session socket)")
	cmd.Flags().StringVar(&levelFlag, "log-level", "", "debug, info, warn or error (overrides config)")
	return cmd
}
