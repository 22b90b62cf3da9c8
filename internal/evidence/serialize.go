package evidence

import (
	"encoding/json"
	"fmt"

	"github.com/pathwise/pathwise/pkg/domain"
)

// blobVersion guards against future layout changes of the persisted blob.
const blobVersion = 1

// PersistedState is the serialized shape of the evidence store. The only
// format requirement is that it round-trips losslessly through
// Serialize/Deserialize.
type PersistedState struct {
	Version        int                         `json:"version"`
	TotalChoices   int                         `json:"total_choices"`
	TagCounts      map[string]int              `json:"tag_counts"`
	Demonstrations []domain.SkillDemonstration `json:"demonstrations"`
	Milestones     []domain.SkillMilestone     `json:"milestones"`
}

// serializeLocked marshals the current state. Callers must hold the lock.
func (s *Store) serializeLocked() ([]byte, error) {
	state := PersistedState{
		Version:        blobVersion,
		TotalChoices:   s.totalChoices,
		TagCounts:      s.tagCounts,
		Demonstrations: s.demonstrations,
		Milestones:     s.milestones,
	}
	blob, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize evidence: %w", err)
	}
	return blob, nil
}

// Serialize marshals the store for persistence.
func (s *Store) Serialize() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serializeLocked()
}

// Deserialize parses a persisted blob. It rejects unknown versions and
// malformed JSON; callers treat any error as a corrupt blob and start
// empty.
func Deserialize(blob []byte) (*PersistedState, error) {
	var state PersistedState
	if err := json.Unmarshal(blob, &state); err != nil {
		return nil, fmt.Errorf("failed to parse evidence blob: %w", err)
	}
	if state.Version != blobVersion {
		return nil, fmt.Errorf("unsupported evidence blob version %d", state.Version)
	}
	return &state, nil
}
