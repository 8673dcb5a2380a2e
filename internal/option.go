package internal

import (
	"io"
	"log/slog"
	"os"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	logger  *slog.Logger
	in      io.Reader
	out     io.Writer
	version string
	route   string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger replaces the default JSON logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithIO sets the streams used by the browse shell and the MCP transport.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *application) {
		a.in, a.out = in, out
	}
}

// WithVersion sets the version reported to MCP clients.
func WithVersion(v string) Option {
	return func(a *application) {
		a.version = v
	}
}

// WithRoute sets the fragment the browse shell opens first.
func WithRoute(fragment string) Option {
	return func(a *application) {
		a.route = fragment
	}
}

// newApplication applies opts and fills the defaults. logTo receives the
// JSON log when no logger was given.
func newApplication(logTo io.Writer, opts ...Option) *application {
	app := &application{in: os.Stdin, out: os.Stdout, version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil && app.config != nil {
		app.logger = slog.New(slog.NewJSONHandler(logTo, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
	}
	return app
}
