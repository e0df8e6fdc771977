package logconfig

import (
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds registry settings. ConfigFromEnv fills it from LOGCONFIG_*
// environment variables.
type Config struct {
	// SearchPaths are directories searched for definitions before the
	// built-ins, in order.
	SearchPaths []string `env:"LOGCONFIG_PATH" envSeparator:":"`
	// DefaultConfig is auto-loaded by GetLogger on an unconfigured registry.
	DefaultConfig string `env:"LOGCONFIG_DEFAULT" envDefault:"logging_console" validate:"required"`
	// DefaultLevel is the level of the auto-loaded configuration.
	DefaultLevel string `env:"LOGCONFIG_LEVEL" envDefault:"DEBUG" validate:"required,loglevel"`
	// LogDir holds file handlers that name no file.
	LogDir string `env:"LOGCONFIG_DIR" envDefault:"." validate:"required"`
	// Diagnostics sends the registry's own warnings to stderr.
	Diagnostics bool `env:"LOGCONFIG_DIAGNOSTICS"`
}

// DefaultConfig returns the settings used by New.
func DefaultConfig() Config {
	return Config{
		DefaultConfig: DefaultConfigName,
		DefaultLevel:  DefaultLevel,
		LogDir:        ".",
	}
}

// ConfigFromEnv parses and validates the LOGCONFIG_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option configures a Registry.
type Option func(*Registry)

// WithConfig replaces the registry settings.
func WithConfig(cfg Config) Option {
	return func(r *Registry) {
		r.cfg = cfg
	}
}

// WithSource adds definition sources. They are searched after the
// configured search paths and before the built-ins.
func WithSource(src ...Source) Option {
	return func(r *Registry) {
		r.extraSources = append(r.extraSources, src...)
	}
}

// WithoutBuiltins stops the registry from resolving the embedded definitions.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.noBuiltins = true
	}
}

// WithStdout redirects console handlers that write to stdout.
func WithStdout(w io.Writer) Option {
	return func(r *Registry) {
		r.stdout = w
	}
}

// WithStderr redirects console handlers that write to stderr.
func WithStderr(w io.Writer) Option {
	return func(r *Registry) {
		r.stderr = w
	}
}

// WithDiagnostics sends the registry's own warnings, such as name
// collisions and failed reloads, to w.
func WithDiagnostics(w io.Writer) Option {
	return func(r *Registry) {
		r.diagOut = w
	}
}

func newDiagnosticLogger(w io.Writer) zerolog.Logger {
	if w == nil {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		With().Timestamp().Str("component", "logconfig").Logger()
}

func diagnosticsOutput(cfg Config, w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	if cfg.Diagnostics {
		return os.Stderr
	}
	return nil
}
