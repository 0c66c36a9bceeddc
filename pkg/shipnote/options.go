package shipnote

import (
	"log/slog"
	"time"

	"github.com/aretw0/shipnote/pkg/core"
)

// options holds the internal configuration for a pipeline run.
type options struct {
	logger    *slog.Logger
	repo      core.Repository
	history   core.History
	publisher core.Publisher
	now       func() time.Time
}

// Option defines a functional option for configuring a run.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger: slog.Default(),
		now:    time.Now,
	}
}

// WithLogger sets the logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a custom version-control adapter (e.g. a fake).
// If provided, the default git client is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repo = repo
	}
}

// WithHistory injects a custom history source, overriding the source
// mode from the configuration.
func WithHistory(h core.History) Option {
	return func(o *options) {
		o.history = h
	}
}

// WithPublisher injects a custom publisher, overriding the GitHub
// client.
func WithPublisher(p core.Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithClock fixes the notion of "today" (useful for testing the
// date-coded versioning).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
