package session

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.wpnew.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".wpnew")
}

// SessionsDir returns the directory holding every session.
func SessionsDir() string {
	return filepath.Join(BaseDir(), "sessions")
}

// Dir returns the session-specific directory.
func Dir(name string) string {
	return filepath.Join(SessionsDir(), name)
}

// SocketPath returns the UDS socket path for a session.
func SocketPath(name string) string {
	return filepath.Join(Dir(name), "daemon.sock")
}

// DeviceDBPath returns the whatsmeow device store path.
func DeviceDBPath(name string) string {
	return filepath.Join(Dir(name), "device.db")
}

// RosterDBPath returns the app-owned roster database path.
func RosterDBPath(name string) string {
	return filepath.Join(Dir(name), "roster.db")
}

// LogDir returns the log directory for a session.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// DaemonLogPath returns the daemon log file path.
func DaemonLogPath(name string) string {
	return filepath.Join(LogDir(name), "wpnewd.log")
}

// ClientLogPath returns the TUI log file path. The TUI owns the terminal,
// so it never logs to stderr.
func ClientLogPath(name string) string {
	return filepath.Join(LogDir(name), "wpnew.log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the session directory tree with proper permissions.
func EnsureDir(name string) error {
	for _, d := range []string{Dir(name), LogDir(name)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}

// Info describes a session found on disk.
type Info struct {
	Name          string
	Path          string
	DaemonRunning bool
}

// List returns the sessions under SessionsDir. A session counts as running
// when its socket file exists; callers that need certainty should probe it.
func List() ([]Info, error) {
	entries, err := os.ReadDir(SessionsDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []Info
	for _, e := range entries {
		if !e.IsDir() || ValidateName(e.Name()) != nil {
			continue
		}
		_, statErr := os.Stat(SocketPath(e.Name()))
		out = append(out, Info{
			Name:          e.Name(),
			Path:          Dir(e.Name()),
			DaemonRunning: statErr == nil,
		})
	}
	return out, nil
}
