package caravan

import (
	"context"
	"log/slog"
)

// Option configures a Manager.
type Option func(*managerConfig) error

// managerConfig holds Manager construction settings.
type managerConfig struct {
	// logger is the structured logger for resolution diagnostics.
	// If nil, logging is disabled (silent mode).
	//
	// log/slog is used rather than a custom interface because slog
	// separates frontend from backend: callers can plug in any
	// handler (zap, zerolog, etc.). See https://go.dev/blog/slog
	logger *slog.Logger

	// registry lets callers share a pre-populated registry between
	// managers. If nil, the manager starts with an empty one.
	registry *Registry
}

// WithLogger sets a structured logger for install and resolution
// diagnostics. If not set, the manager is silent.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	m, err := caravan.NewManager(caravan.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *managerConfig) error {
		c.logger = l
		return nil
	}
}

// WithRegistry seeds the manager with an existing registry instead of
// an empty one. The manager takes ownership: callers must not mutate
// the registry concurrently afterwards.
func WithRegistry(r *Registry) Option {
	return func(c *managerConfig) error {
		c.registry = r
		return nil
	}
}

// log returns the configured logger, or a no-op logger if none was
// set, so internal code never needs nil checks.
//
// Libraries should be silent by default; callers opt in via
// WithLogger.
func (c *managerConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that drops all records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

func newManagerConfig(opts ...Option) (*managerConfig, error) {
	c := &managerConfig{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
