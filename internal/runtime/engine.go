// Package runtime implements the dialogue traversal engine: it owns the
// "current node" pointer inside a session state, decides which choices are
// legal, applies consequences through a pure reducer, and recovers from
// dangling or gated-shut transition targets via contextual fallback.
package runtime

import (
	"log/slog"
	"time"

	"github.com/pathwise/pathwise/internal/logging"
	"github.com/pathwise/pathwise/internal/metrics"
	"github.com/pathwise/pathwise/pkg/domain"
	"github.com/pathwise/pathwise/pkg/ports"
)

// Engine is the traversal core. It holds no per-session state; the session
// snapshot is passed explicitly and never mutated in place.
type Engine struct {
	loader      ports.GraphLoader
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	metrics     *metrics.Metrics
	entryNodeID string
	hubNodeID   string
	now         func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithEntryNode sets the initial node id (default: "start").
func WithEntryNode(nodeID string) Option {
	return func(e *Engine) {
		if nodeID != "" {
			e.entryNodeID = nodeID
		}
	}
}

// WithHubNode sets the last-resort fallback target (default: "hub").
func WithHubNode(nodeID string) Option {
	return func(e *Engine) {
		if nodeID != "" {
			e.hubNodeID = nodeID
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a traversal engine over the given graph loader.
func NewEngine(loader ports.GraphLoader, opts ...Option) *Engine {
	e := &Engine{
		loader:      loader,
		logger:      logging.NewNop(),
		entryNodeID: "start",
		hubNodeID:   "hub",
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EntryNodeID returns the configured entry node.
func (e *Engine) EntryNodeID() string {
	return e.entryNodeID
}
