package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/reqline/internal/app"
	"github.com/atomicstack/reqline/internal/loop"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Values  map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// The program takes no flags; these only switch on diagnostics or tune the
// poll window.
const (
	envLogFile     = "REQLINE_LOG_FILE"
	envTrace       = "REQLINE_TRACE"
	envPollTimeout = "REQLINE_POLL_TIMEOUT"
)

// Load reads configuration from the process environment.
func Load() (Config, error) {
	cfg, err := LoadEnv(os.Environ())
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), os.Args[1:]...)
	return cfg, nil
}

// LoadEnv allows tests to supply a specific environment.
func LoadEnv(environ []string) (Config, error) {
	env := parseEnv(environ)

	timeout, err := envOrDuration(env, envPollTimeout, loop.DefaultPollTimeout)
	if err != nil {
		return Config{}, err
	}
	logFile := envOrDefault(env, envLogFile, "")
	trace := envOrBool(env, envTrace, false)

	cfg := Config{
		App: app.Config{
			PollTimeout: timeout,
			Label:       app.DefaultLabel,
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    trace,
		},
		Values: map[string]string{
			"pollTimeout": timeout.String(),
			"trace":       strconv.FormatBool(trace),
			"logFile":     logFile,
		},
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) (time.Duration, error) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.PollTimeout <= 0 {
		return fmt.Errorf("poll timeout must be > 0 (got %s)", cfg.App.PollTimeout)
	}
	return nil
}
