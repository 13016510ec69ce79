package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/matheus3301/wpnew/internal/session"
	"github.com/matheus3301/wpnew/internal/tui/client"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	session string
	socket  string
	json    bool
	timeout time.Duration
	out     io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	o := &options{out: out}
	cmd := &cobra.Command{
		Use:   "wpnewctl",
		Short: "Script the wpnew daemon",
		Long: `wpnewctl talks to a running wpnewd over its session socket. It covers
the same ground as the wpnew screens: the roster, directory search and
group creation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.session, "session", "", "session name (overrides config default)")
	flags.StringVar(&o.socket, "socket", "", "daemon socket (overrides the session socket)")
	flags.BoolVar(&o.json, "json", false, "output in JSON format")
	flags.DurationVar(&o.timeout, "timeout", 10*time.Second, "per-command deadline")

	cmd.AddCommand(
		newStatusCmd(o),
		newRosterCmd(o),
		newSearchCmd(o),
		newDirectCmd(o),
		newGroupCmd(o),
		newSessionsCmd(o),
	)
	return cmd
}

func (o *options) socketPath() (string, error) {
	if o.socket != "" {
		return o.socket, nil
	}
	name, err := session.Resolve(o.session)
	if err != nil {
		return "", err
	}
	return session.SocketPath(name), nil
}

// call connects to the daemon and runs fn under the command deadline.
func (o *options) call(fn func(ctx context.Context, c *client.Client) error) error {
	path, err := o.socketPath()
	if err != nil {
		return err
	}
	c, err := client.New(path)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()
	return fn(ctx, c)
}

func (o *options) printJSON(v any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o *options) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.out, format, args...)
}
