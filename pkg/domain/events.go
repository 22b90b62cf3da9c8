package domain

import (
	"context"
	"time"
)

// SyncEventType categorizes events emitted toward the outbound sync
// collaborator.
type SyncEventType string

const (
	EventSkillSummary   SyncEventType = "skill_summary"
	EventChoiceRecorded SyncEventType = "choice_recorded"
)

// SyncEvent is the discrete unit handed to the sync queue. The core does
// not know or care how or when these are flushed to a remote system.
type SyncEvent struct {
	Type      SyncEventType  `json:"type"`
	UserID    string         `json:"user_id"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

// NodeEvent describes entry into a dialogue node.
type NodeEvent struct {
	NodeID    string    `json:"node_id"`
	Speaker   string    `json:"speaker,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ChoiceEvent describes an applied choice, including whether the transition
// had to route through contextual fallback.
type ChoiceEvent struct {
	NodeID     string    `json:"node_id"`
	ChoiceID   string    `json:"choice_id"`
	NextNodeID string    `json:"next_node_id"`
	Fallback   bool      `json:"fallback,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// LifecycleHooks defines callbacks for traversal observability. Nil hooks
// are skipped.
type LifecycleHooks struct {
	OnNodeEnter     func(context.Context, *NodeEvent)
	OnChoiceApplied func(context.Context, *ChoiceEvent)
}
