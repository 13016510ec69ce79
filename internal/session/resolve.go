package session

import (
	"os"

	"github.com/matheus3301/wpnew/internal/config"
)

const (
	DefaultSessionName = "main"

	// EnvSession names the session when no --session flag is given.
	EnvSession = "WPNEW_SESSION"
)

// Resolve picks the session for this process and validates it. The first
// non-empty source wins: the --session flag, $WPNEW_SESSION, default_session
// in config.toml, then "main". A config file that fails to load is skipped.
func Resolve(flagOverride string) (string, error) {
	name := flagOverride
	if name == "" {
		name = os.Getenv(EnvSession)
	}
	if name == "" {
		if cfg, err := config.Load(ConfigPath()); err == nil {
			name = cfg.DefaultSession
		}
	}
	if name == "" {
		name = DefaultSessionName
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}
