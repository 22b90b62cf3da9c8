package pathwise

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pathwise/pathwise/internal/evidence"
	"github.com/pathwise/pathwise/pkg/domain"
)

// Session binds one player's traversal state to their evidence log. It is
// the unit of persistence: the dialogue state and the evidence blob are
// stored under keys derived from the session id.
//
// A Session is not safe for concurrent use; serialize access per player.
type Session struct {
	ID     string
	engine *Engine
	state  *domain.SessionState
	log    *evidence.Store
}

// ApplyResult is the outcome of one applied choice, combining the traversal
// transition with the evidence extracted from it.
type ApplyResult struct {
	Node           *domain.DialogueNode
	State          *domain.SessionState
	Choice         domain.Choice
	FellBack       bool
	Demonstrations []domain.SkillDemonstration
	// EvidenceSource names the extraction tier that produced the
	// demonstrations (authored_exact, authored_fuzzy, pattern, keyword,
	// none).
	EvidenceSource string
	// PersistenceWarning is set when saving state or evidence failed after
	// retries. The in-memory session remains fully usable; only durability
	// is degraded.
	PersistenceWarning error
}

// Session opens the session with the given id, restoring persisted dialogue
// state and evidence if present, or starting fresh at the entry node.
func (e *Engine) Session(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id is required")
	}

	s := &Session{
		ID:     id,
		engine: e,
		log:    e.evidenceStore(id),
	}
	s.log.Load(ctx)

	blob, err := e.blobs.Load(ctx, sessionKey(id))
	switch {
	case err == nil:
		state := &domain.SessionState{}
		if err := json.Unmarshal(blob, state); err != nil {
			e.logger.Warn("corrupt session state, starting fresh", "session", id, "error", err)
		} else {
			// Guard against graphs that changed underneath a saved session.
			if _, err := e.loader.GetNode(state.CurrentNodeID); err == nil {
				s.state = state
			} else {
				e.logger.Warn("saved session points at a missing node, starting fresh",
					"session", id, "node", state.CurrentNodeID)
			}
		}
	case errors.Is(err, domain.ErrKeyNotFound):
		// First visit.
	default:
		e.logger.Warn("failed to load session state, starting fresh", "session", id, "error", err)
	}

	if s.state == nil {
		state, _, err := e.runtime.Start(ctx)
		if err != nil {
			return nil, err
		}
		s.state = state
	}
	return s, nil
}

// State returns the current dialogue state snapshot.
func (s *Session) State() *domain.SessionState {
	return s.state
}

// Current returns the active dialogue node.
func (s *Session) Current() (*domain.DialogueNode, error) {
	return s.engine.loader.GetNode(s.state.CurrentNodeID)
}

// Available returns the choices the player may take right now, in authored
// order, filtered by their visibility conditions.
func (s *Session) Available() ([]domain.Choice, error) {
	node, err := s.Current()
	if err != nil {
		return nil, err
	}
	return s.engine.runtime.AvailableChoices(node, s.state), nil
}

// Apply takes a choice: it advances the dialogue, extracts skill evidence
// from the decision and persists both. Traversal errors (illegal choice,
// broken current node) are returned as errors; persistence degradation is
// reported via ApplyResult.PersistenceWarning instead, because the player's
// session must survive a full disk.
func (s *Session) Apply(ctx context.Context, choiceID string) (*ApplyResult, error) {
	start := time.Now()

	scene, err := s.Current()
	if err != nil {
		return nil, err
	}

	outcome, err := s.engine.runtime.ApplyChoice(ctx, s.state, choiceID)
	if err != nil {
		return nil, err
	}
	s.state = outcome.State

	demos, source := s.engine.extractor.Extract(scene, &outcome.Choice, s.state)
	s.engine.metrics.ObserveDemonstrations(source, len(demos))

	result := &ApplyResult{
		Node:           outcome.Node,
		State:          outcome.State,
		Choice:         outcome.Choice,
		FellBack:       outcome.FellBack,
		Demonstrations: demos,
		EvidenceSource: source,
	}

	if err := s.log.RecordChoice(ctx, demos); err != nil {
		result.PersistenceWarning = err
	}
	if err := s.saveState(ctx); err != nil && result.PersistenceWarning == nil {
		result.PersistenceWarning = err
	}

	s.engine.metrics.ObserveApplyLatency(time.Since(start).Seconds())
	return result, nil
}

// Matches ranks the career catalog against this session's evidence.
func (s *Session) Matches() []domain.CareerMatch {
	return s.engine.matcher.Match(s.log.Snapshot())
}

// Snapshot returns the session's evidence aggregate.
func (s *Session) Snapshot() domain.EvidenceSnapshot {
	return s.log.Snapshot()
}

// Reset discards the dialogue state and restarts at the entry node. The
// evidence log is preserved: skills demonstrated before the reset still
// count.
func (s *Session) Reset(ctx context.Context) error {
	state, _, err := s.engine.runtime.Start(ctx)
	if err != nil {
		return err
	}
	s.state = state
	return s.saveState(ctx)
}

func (s *Session) saveState(ctx context.Context) error {
	blob, err := json.Marshal(s.state)
	if err != nil {
		return &domain.PersistenceError{Key: sessionKey(s.ID), Err: err}
	}
	if err := s.engine.blobs.Save(ctx, sessionKey(s.ID), blob); err != nil {
		s.engine.metrics.ObservePersistenceFailure()
		s.engine.logger.Error("failed to save session state", "session", s.ID, "error", err)
		return &domain.PersistenceError{Key: sessionKey(s.ID), Err: err}
	}
	return nil
}
