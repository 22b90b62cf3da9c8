package domain

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned when a node id cannot be resolved by the
// graph loader.
var ErrNodeNotFound = errors.New("node not found")

// ErrSessionNotFound is returned when a session id cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrKeyNotFound is returned by blob stores when a key has never been
// written. Callers must tolerate it on first load.
var ErrKeyNotFound = errors.New("key not found")

// IllegalChoiceError reports an attempt to apply a choice that is not in
// the currently-available set. It is always rejected, never silently
// applied.
type IllegalChoiceError struct {
	NodeID   string
	ChoiceID string
}

func (e *IllegalChoiceError) Error() string {
	return fmt.Sprintf("choice %q is not available on node %q", e.ChoiceID, e.NodeID)
}

// UnresolvedTargetError describes a dangling transition target. The runtime
// recovers locally via contextual fallback; this type exists so the defect
// can be logged and reported by the offline validator.
type UnresolvedTargetError struct {
	SourceNodeID string
	TargetNodeID string
}

func (e *UnresolvedTargetError) Error() string {
	return fmt.Sprintf("node %q references unresolved target %q", e.SourceNodeID, e.TargetNodeID)
}

// UnknownPatternError describes a choice declaring a trait pattern outside
// the fixed vocabulary. It is a content defect, not a runtime failure: the
// extractor produces no skills and continues.
type UnknownPatternError struct {
	SceneID  string
	ChoiceID string
	Pattern  string
}

func (e *UnknownPatternError) Error() string {
	return fmt.Sprintf("choice %q in scene %q declares unknown pattern %q", e.ChoiceID, e.SceneID, e.Pattern)
}

// PersistenceError signals that the evidence store could not be saved even
// after cleanup and one retry. In-memory state is retained; only the
// durability guarantee is weakened. Callers should surface a non-blocking
// warning, never halt the narrative.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed for %q: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
