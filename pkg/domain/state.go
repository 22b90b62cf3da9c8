package domain

import "time"

// Relationship scalar bounds. Every trust/confidence value is clamped into
// this range whenever it is written.
const (
	RelationshipMin = 0
	RelationshipMax = 10
)

// ClampRelationship bounds a relationship scalar into the fixed range.
func ClampRelationship(v int) int {
	if v < RelationshipMin {
		return RelationshipMin
	}
	if v > RelationshipMax {
		return RelationshipMax
	}
	return v
}

// Relationship holds the per-character scalars accumulated over a session.
type Relationship struct {
	Trust      int `json:"trust"`
	Confidence int `json:"confidence"`
}

// ChoiceRecord is one entry of the append-only choice history.
type ChoiceRecord struct {
	NodeID    string    `json:"node_id"`
	ChoiceID  string    `json:"choice_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionState is the per-player snapshot of accumulated narrative state.
// It is mutated only by the traversal engine, through a clone-and-apply
// reducer; callers must treat any instance they hold as immutable.
type SessionState struct {
	CurrentNodeID string                  `json:"current_node_id"`
	Flags         StringSet               `json:"flags"`
	Knowledge     StringSet               `json:"knowledge"`
	Relationships map[string]Relationship `json:"relationships"`
	History       []ChoiceRecord          `json:"history"`
}

// NewSessionState creates a clean state positioned at the given node.
func NewSessionState(startNodeID string) *SessionState {
	return &SessionState{
		CurrentNodeID: startNodeID,
		Flags:         make(StringSet),
		Knowledge:     make(StringSet),
		Relationships: make(map[string]Relationship),
	}
}

// Clone returns a deep copy safe for independent mutation.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	next := &SessionState{
		CurrentNodeID: s.CurrentNodeID,
		Flags:         s.Flags.Clone(),
		Knowledge:     s.Knowledge.Clone(),
		Relationships: make(map[string]Relationship, len(s.Relationships)),
		History:       make([]ChoiceRecord, len(s.History)),
	}
	for k, v := range s.Relationships {
		next.Relationships[k] = v
	}
	copy(next.History, s.History)
	return next
}

// Trust returns the current trust level for a character (zero if the
// character has never been interacted with).
func (s *SessionState) Trust(character string) int {
	return s.Relationships[character].Trust
}

// Meets evaluates a gate against this state. A nil requirement always
// passes.
func (s *SessionState) Meets(req *StateRequirement) bool {
	if req == nil {
		return true
	}
	for character, min := range req.MinTrust {
		if s.Trust(character) < min {
			return false
		}
	}
	if !s.Knowledge.ContainsAll(req.Knowledge) {
		return false
	}
	return s.Flags.ContainsAll(req.Flags)
}
