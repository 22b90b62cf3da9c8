package evidence

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pathwise/pathwise/internal/logging"
	"github.com/pathwise/pathwise/internal/metrics"
	"github.com/pathwise/pathwise/pkg/domain"
	"github.com/pathwise/pathwise/pkg/ports"
)

// Config holds the retention and persistence policy knobs. The defaults are
// policy values, not load-bearing logic; override them per deployment.
type Config struct {
	// MaxEntries is the hard cap on retained demonstrations.
	MaxEntries int
	// RetentionWindow protects recent entries from trimming.
	RetentionWindow time.Duration
	// AggressiveMaxEntries is the reduced cap applied when the serialized
	// blob exceeds MaxBlobBytes.
	AggressiveMaxEntries int
	// MaxBlobBytes is the serialized-size guard checked before every write.
	MaxBlobBytes int
	// MaxJustificationLen bounds justification strings under aggressive
	// cleanup.
	MaxJustificationLen int
	// MilestoneInterval snapshots a milestone every Nth choice (the first
	// choice always gets one).
	MilestoneInterval int
	// SyncThreshold emits sync events whenever a tag's demonstration count
	// crosses a multiple of this value.
	SyncThreshold int
}

// DefaultConfig returns the reference policy.
func DefaultConfig() Config {
	return Config{
		MaxEntries:           500,
		RetentionWindow:      30 * 24 * time.Hour,
		AggressiveMaxEntries: 100,
		MaxBlobBytes:         256 << 10,
		MaxJustificationLen:  160,
		MilestoneInterval:    10,
		SyncThreshold:        3,
	}
}

// Store is the durable, size-bounded retention log of skill demonstrations
// and milestone snapshots. Appends preserve choice order; entries are
// immutable and only ever removed oldest-first under the recency-preserving
// retention rule.
type Store struct {
	mu      sync.RWMutex
	key     string
	userID  string
	blobs   ports.BlobStore
	queue   ports.SyncQueue
	logger  *slog.Logger
	metrics *metrics.Metrics
	cfg     Config
	now     func() time.Time

	demonstrations []domain.SkillDemonstration
	milestones     []domain.SkillMilestone
	totalChoices   int
	// tagCounts is cumulative over the whole session: retention trimming
	// never decrements it, so sync thresholds stay monotone.
	tagCounts map[string]int
}

// StoreOption configures the store.
type StoreOption func(*Store)

// WithStoreConfig overrides the retention policy.
func WithStoreConfig(cfg Config) StoreOption {
	return func(s *Store) {
		s.cfg = cfg
	}
}

// WithStoreLogger sets a structured logger.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSyncQueue attaches the outbound sync collaborator.
func WithSyncQueue(queue ports.SyncQueue) StoreOption {
	return func(s *Store) {
		s.queue = queue
	}
}

// WithStoreMetrics attaches Prometheus instrumentation.
func WithStoreMetrics(m *metrics.Metrics) StoreOption {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithUserID tags outbound sync events with a user identity.
func WithUserID(userID string) StoreOption {
	return func(s *Store) {
		s.userID = userID
	}
}

// WithStoreClock overrides the time source, for tests.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a store persisting under the given key.
func NewStore(blobs ports.BlobStore, key string, opts ...StoreOption) *Store {
	s := &Store{
		key:       key,
		blobs:     blobs,
		logger:    logging.NewNop(),
		cfg:       DefaultConfig(),
		now:       time.Now,
		tagCounts: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores persisted state. A missing or corrupt blob initializes an
// empty store; it never fails the session.
func (s *Store) Load(ctx context.Context) {
	blob, err := s.blobs.Load(ctx, s.key)
	if err != nil {
		// Absence is the normal first-run path; anything else is logged
		// and treated the same way.
		s.logger.Debug("no persisted evidence, starting empty", "key", s.key, "error", err)
		return
	}

	restored, err := Deserialize(blob)
	if err != nil {
		s.logger.Warn("corrupt persisted evidence, starting empty", "key", s.key, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.demonstrations = restored.Demonstrations
	s.milestones = restored.Milestones
	s.totalChoices = restored.TotalChoices
	s.tagCounts = restored.TagCounts
	if s.tagCounts == nil {
		s.tagCounts = make(map[string]int)
	}
}

// RecordChoice appends the demonstrations extracted from one applied choice
// (possibly none), takes milestone snapshots at checkpoints, enforces
// retention, emits threshold-crossing sync events and persists. Only a
// *domain.PersistenceError is ever returned; in-memory state is always
// retained.
func (s *Store) RecordChoice(ctx context.Context, demos []domain.SkillDemonstration) error {
	s.mu.Lock()
	s.totalChoices++

	var crossed []string
	for _, d := range demos {
		s.demonstrations = append(s.demonstrations, d)
		for _, tag := range d.Skills {
			s.tagCounts[tag]++
			if s.cfg.SyncThreshold > 0 && s.tagCounts[tag]%s.cfg.SyncThreshold == 0 {
				crossed = append(crossed, tag)
			}
		}
	}

	if s.totalChoices == 1 || (s.cfg.MilestoneInterval > 0 && s.totalChoices%s.cfg.MilestoneInterval == 0) {
		checkpoint := "first_choice"
		if s.totalChoices != 1 {
			checkpoint = fmt.Sprintf("choice_%d", s.totalChoices)
		}
		s.milestones = append(s.milestones, domain.SkillMilestone{
			Checkpoint:     checkpoint,
			Demonstrations: len(s.demonstrations),
			Timestamp:      s.now(),
		})
	}

	s.trim(s.cfg.MaxEntries)
	s.mu.Unlock()

	s.emitSyncEvents(ctx, demos, crossed)
	return s.persist(ctx)
}

// trim enforces the recency-preserving retention rule: entries older than
// the window go first, oldest-first; if recent entries alone still exceed
// the cap, only the most recent cap-worth survive.
func (s *Store) trim(cap int) {
	if cap <= 0 || len(s.demonstrations) <= cap {
		return
	}
	cutoff := s.now().Add(-s.cfg.RetentionWindow)

	drop := 0
	for len(s.demonstrations)-drop > cap &&
		drop < len(s.demonstrations) &&
		s.demonstrations[drop].Timestamp.Before(cutoff) {
		drop++
	}
	s.demonstrations = s.demonstrations[drop:]

	if len(s.demonstrations) > cap {
		s.demonstrations = s.demonstrations[len(s.demonstrations)-cap:]
	}
}

// aggressiveCleanup shrinks the log to the reduced cap and truncates
// oversized justification strings. Evidence loss under sustained pressure
// is acceptable; silent corruption is not.
func (s *Store) aggressiveCleanup() {
	s.trim(s.cfg.AggressiveMaxEntries)
	if s.cfg.MaxJustificationLen <= 0 {
		return
	}
	for i := range s.demonstrations {
		if just := s.demonstrations[i].Justification; len(just) > s.cfg.MaxJustificationLen {
			// Back off to a rune boundary so truncation never produces
			// invalid UTF-8.
			cut := s.cfg.MaxJustificationLen
			for cut > 0 && !utf8.RuneStart(just[cut]) {
				cut--
			}
			s.demonstrations[i].Justification = just[:cut]
		}
	}
}

// persist serializes and saves the store, guarding serialized size before
// the write. One cleanup-and-retry is the ceiling; a second failure is
// surfaced as a PersistenceError signal.
func (s *Store) persist(ctx context.Context) error {
	attempt := func() error {
		s.mu.RLock()
		blob, err := s.serializeLocked()
		oversize := err == nil && s.cfg.MaxBlobBytes > 0 && len(blob) > s.cfg.MaxBlobBytes
		s.mu.RUnlock()
		if err != nil {
			return err
		}
		if oversize {
			return fmt.Errorf("serialized evidence exceeds %d bytes", s.cfg.MaxBlobBytes)
		}
		return s.blobs.Save(ctx, s.key, blob)
	}

	if err := attempt(); err != nil {
		s.logger.Warn("evidence save failed, running aggressive cleanup", "key", s.key, "error", err)
		s.mu.Lock()
		s.aggressiveCleanup()
		s.mu.Unlock()

		if err := attempt(); err != nil {
			s.metrics.ObservePersistenceFailure()
			s.logger.Error("evidence save failed after cleanup and retry", "key", s.key, "error", err)
			return &domain.PersistenceError{Key: s.key, Err: err}
		}
	}
	return nil
}

// emitSyncEvents pushes threshold-crossing events to the sync collaborator.
// Enqueue failures are logged and dropped; they never affect the session.
func (s *Store) emitSyncEvents(ctx context.Context, demos []domain.SkillDemonstration, crossed []string) {
	if s.queue == nil || len(crossed) == 0 {
		return
	}

	s.mu.RLock()
	counts := make(map[string]int, len(crossed))
	for _, tag := range crossed {
		counts[tag] = s.tagCounts[tag]
	}
	s.mu.RUnlock()

	now := s.now()
	for _, tag := range crossed {
		evt := domain.SyncEvent{
			Type:      domain.EventSkillSummary,
			UserID:    s.userID,
			Payload:   map[string]any{"skill": tag, "count": counts[tag]},
			Timestamp: now,
		}
		if err := s.queue.Enqueue(ctx, evt); err != nil {
			s.logger.Warn("failed to enqueue skill summary", "skill", tag, "error", err)
		}
	}

	for _, d := range demos {
		evt := domain.SyncEvent{
			Type:   domain.EventChoiceRecorded,
			UserID: s.userID,
			Payload: map[string]any{
				"scene_id":    d.SceneID,
				"choice_text": d.ChoiceText,
				"skills":      d.Skills,
			},
			Timestamp: now,
		}
		if err := s.queue.Enqueue(ctx, evt); err != nil {
			s.logger.Warn("failed to enqueue choice record", "scene", d.SceneID, "error", err)
		}
	}
}

// Snapshot returns the read-only aggregate for consumers. The matcher and
// dashboards read this; they never see the raw internal level numbers.
func (s *Store) Snapshot() domain.EvidenceSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	demos := make([]domain.SkillDemonstration, len(s.demonstrations))
	copy(demos, s.demonstrations)

	bySkill := make(map[string][]domain.SkillDemonstration)
	for _, d := range demos {
		for _, tag := range d.Skills {
			bySkill[tag] = append(bySkill[tag], d)
		}
	}

	milestones := make([]domain.SkillMilestone, len(s.milestones))
	copy(milestones, s.milestones)

	return domain.EvidenceSnapshot{
		Demonstrations:        demos,
		DemonstrationsBySkill: bySkill,
		Milestones:            milestones,
		TotalDemonstrations:   len(demos),
		TotalChoices:          s.totalChoices,
	}
}

// Len reports the number of retained demonstrations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.demonstrations)
}
