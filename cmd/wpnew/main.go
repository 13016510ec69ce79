package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/matheus3301/wpnew/internal/config"
	"github.com/matheus3301/wpnew/internal/logging"
	"github.com/matheus3301/wpnew/internal/session"
	"github.com/matheus3301/wpnew/internal/tui"
	"github.com/matheus3301/wpnew/internal/tui/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	probeTimeout = 2 * time.Second
	startTimeout = 10 * time.Second
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var sessionFlag string
	cmd := &cobra.Command{
		Use:           "wpnew",
		Short:         "Start WhatsApp conversations and groups from the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(sessionFlag)
		},
	}
	cmd.Flags().StringVar(&sessionFlag, "session", "", "session name (overrides config default)")
	return cmd
}

func run(sessionFlag string) error {
	sessionName, err := session.Resolve(sessionFlag)
	if err != nil {
		return err
	}
	if err := session.EnsureDir(sessionName); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	cfg, err := config.Load(session.ConfigPath())
	if err != nil {
		cfg = config.Default()
	}

	// stderr belongs to the terminal UI.
	logger, err := logging.New(logging.Options{
		Path:    session.ClientLogPath(sessionName),
		Session: sessionName,
		Level:   cfg.Log.Level,
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	socketPath := session.SocketPath(sessionName)
	if !client.Probe(socketPath, probeTimeout) {
		fmt.Fprintf(os.Stderr, "daemon not running for session %q, starting...\n", sessionName)
		if err := startDaemon(sessionName); err != nil {
			return fmt.Errorf("start daemon: %w", err)
		}
		if !waitForDaemon(socketPath, startTimeout) {
			return fmt.Errorf("daemon did not become ready, see %s", session.DaemonLogPath(sessionName))
		}
		logger.Info("daemon started", zap.String("socket", socketPath))
	}

	c, err := client.New(socketPath)
	if err != nil {
		return fmt.Errorf("connect to daemon: %w", err)
	}
	defer func() { _ = c.Close() }()

	app := tui.NewApp(c, cfg, sessionName, logger)
	if err := app.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		return err
	}
	return nil
}

// startDaemon launches wpnewd detached from this terminal. It prefers the
// binary installed next to wpnew.
func startDaemon(sessionName string) error {
	wpnewd := "wpnewd"
	if executable, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(executable), "wpnewd")
		if _, err := os.Stat(sibling); err == nil {
			wpnewd = sibling
		}
	}

	cmd := exec.Command(wpnewd, "--session", sessionName)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func waitForDaemon(socketPath string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if client.Probe(socketPath, probeTimeout) {
			return true
		}
		time.Sleep(300 * time.Millisecond)
	}
	return false
}
