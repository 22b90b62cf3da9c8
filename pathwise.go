package pathwise

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pathwise/pathwise/internal/career"
	"github.com/pathwise/pathwise/internal/evidence"
	"github.com/pathwise/pathwise/internal/logging"
	"github.com/pathwise/pathwise/internal/metrics"
	"github.com/pathwise/pathwise/internal/runtime"
	"github.com/pathwise/pathwise/pkg/adapters/file"
	"github.com/pathwise/pathwise/pkg/adapters/memory"
	"github.com/pathwise/pathwise/pkg/domain"
	"github.com/pathwise/pathwise/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine is the high-level entry point for the Pathwise library. It wraps
// the internal traversal runtime, the evidence pipeline and the career
// matcher behind a simplified API for consumers.
type Engine struct {
	runtime     *runtime.Engine
	loader      ports.GraphLoader
	extractor   *evidence.Extractor
	matcher     *career.Matcher
	scenes      domain.SceneSkillMap
	careers     []domain.CareerPath
	blobs       ports.BlobStore
	queue       ports.SyncQueue
	storeCfg    *evidence.Config
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	metrics     *metrics.Metrics
	runtimeOpts []runtime.Option
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom GraphLoader, bypassing the default YAML file
// initialization.
func WithLoader(l ports.GraphLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithSceneSkills sets the authored scene-to-skill mappings.
func WithSceneSkills(scenes domain.SceneSkillMap) Option {
	return func(e *Engine) {
		e.scenes = scenes
	}
}

// WithCareerPaths replaces the built-in career catalog.
func WithCareerPaths(paths []domain.CareerPath) Option {
	return func(e *Engine) {
		e.careers = paths
	}
}

// WithBlobStore sets the persistence backend for sessions and evidence.
// Defaults to an in-memory store.
func WithBlobStore(blobs ports.BlobStore) Option {
	return func(e *Engine) {
		e.blobs = blobs
	}
}

// WithSyncQueue attaches an outbound queue for skill sync events.
func WithSyncQueue(queue ports.SyncQueue) Option {
	return func(e *Engine) {
		e.queue = queue
	}
}

// WithEvidenceConfig overrides the evidence retention policy.
func WithEvidenceConfig(cfg evidence.Config) Option {
	return func(e *Engine) {
		e.storeCfg = &cfg
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetricsRegisterer registers Prometheus instrumentation on the given
// registerer. Without this option the engine records no metrics.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.metrics = metrics.New(reg)
	}
}

// WithEntryNode configures the initial node ID (default: "start").
func WithEntryNode(nodeID string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithEntryNode(nodeID))
	}
}

// WithHubNode configures the safe hub node used as the fallback of last
// resort (default: "hub").
func WithHubNode(nodeID string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithHubNode(nodeID))
	}
}

// New initializes a Pathwise Engine. By default it loads the dialogue graph
// from the YAML file at graphPath. If WithLoader is provided, graphPath can
// be empty and the file load is skipped.
func New(graphPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if graphPath == "" {
			return nil, fmt.Errorf("graphPath is required when no custom loader is provided")
		}
		loader, err := file.LoadGraph(graphPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dialogue graph: %w", err)
		}
		eng.loader = loader
	}
	if graphPath != "" {
		eng.Name = filepath.Base(graphPath)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("graph", eng.Name)
	}
	if eng.blobs == nil {
		eng.blobs = memory.NewStore()
	}
	if eng.careers == nil {
		eng.careers = career.DefaultCatalog()
	}

	runtimeOpts := []runtime.Option{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithMetrics(eng.metrics),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)

	eng.runtime = runtime.NewEngine(eng.loader, runtimeOpts...)
	eng.extractor = evidence.NewExtractor(eng.scenes, evidence.WithLogger(eng.logger))
	eng.matcher = career.NewMatcher(eng.careers, career.WithMatcherLogger(eng.logger))

	return eng, nil
}

// Loader returns the underlying GraphLoader used by the engine.
func (e *Engine) Loader() ports.GraphLoader {
	return e.loader
}

// Careers returns the active career catalog.
func (e *Engine) Careers() []domain.CareerPath {
	return e.careers
}

// GetNode retrieves a dialogue node by id.
func (e *Engine) GetNode(id string) (*domain.DialogueNode, error) {
	return e.loader.GetNode(id)
}

// Match ranks the career catalog against an arbitrary evidence snapshot.
// Most callers use Session.Matches instead.
func (e *Engine) Match(snap domain.EvidenceSnapshot) []domain.CareerMatch {
	return e.matcher.Match(snap)
}

func (e *Engine) evidenceStore(sessionID string) *evidence.Store {
	opts := []evidence.StoreOption{
		evidence.WithStoreLogger(e.logger),
		evidence.WithStoreMetrics(e.metrics),
		evidence.WithUserID(sessionID),
	}
	if e.queue != nil {
		opts = append(opts, evidence.WithSyncQueue(e.queue))
	}
	if e.storeCfg != nil {
		opts = append(opts, evidence.WithStoreConfig(*e.storeCfg))
	}
	return evidence.NewStore(e.blobs, evidenceKey(sessionID), opts...)
}

func evidenceKey(sessionID string) string { return "evidence:" + sessionID }
func sessionKey(sessionID string) string  { return "session:" + sessionID }
