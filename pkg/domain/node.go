package domain

// Trait pattern vocabulary. A choice may carry at most one pattern; it is
// used by the evidence extractor when a scene has no authored skill map.
const (
	PatternAnalytical = "analytical"
	PatternHelping    = "helping"
	PatternBuilding   = "building"
	PatternPatience   = "patience"
	PatternExploring  = "exploring"
)

// ContentVariant is one renderable version of a node's line. Authors may
// provide several variants (different emotion or pacing); pick-one is the
// presenter's problem, not the engine's.
type ContentVariant struct {
	Text    string `json:"text" yaml:"text"`
	Emotion string `json:"emotion,omitempty" yaml:"emotion,omitempty"`
	Pacing  string `json:"pacing,omitempty" yaml:"pacing,omitempty"`
}

// StateRequirement gates a node or choice on accumulated session state.
// A nil requirement means "no constraint". All listed conditions must hold.
type StateRequirement struct {
	// MinTrust maps character id to the minimum trust level required.
	MinTrust map[string]int `json:"min_trust,omitempty" yaml:"min_trust,omitempty"`
	// Knowledge lists knowledge flags that must all be present.
	Knowledge []string `json:"knowledge,omitempty" yaml:"knowledge,omitempty"`
	// Flags lists global flags that must all be present.
	Flags []string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Consequence is the state delta a choice applies when taken. Trust deltas
// are clamped to the relationship range; flag and knowledge writes are
// set-union.
type Consequence struct {
	TrustDeltas map[string]int `json:"trust_deltas,omitempty" yaml:"trust_deltas,omitempty"`
	Flags       []string       `json:"flags,omitempty" yaml:"flags,omitempty"`
	Knowledge   []string       `json:"knowledge,omitempty" yaml:"knowledge,omitempty"`
}

// EnterEffect is applied every time a node is entered, including re-entry
// through a cycle. Effects are idempotent by construction: flag and
// knowledge writes are set-union, and trust floors raise the scalar to at
// least the given value instead of accumulating.
type EnterEffect struct {
	Flags       []string       `json:"flags,omitempty" yaml:"flags,omitempty"`
	Knowledge   []string       `json:"knowledge,omitempty" yaml:"knowledge,omitempty"`
	TrustFloors map[string]int `json:"trust_floors,omitempty" yaml:"trust_floors,omitempty"`
}

// Choice is a directed, labeled edge out of a DialogueNode.
type Choice struct {
	// ID is unique within the owning node.
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`

	// NextNodeID names the target node. A dangling target is an authoring
	// defect; the runtime recovers via contextual fallback.
	NextNodeID string `json:"next_node_id" yaml:"next_node_id"`

	// Pattern is an optional trait classification from the fixed vocabulary.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Skills optionally tags the choice with competencies it demonstrates.
	Skills []string `json:"skills,omitempty" yaml:"skills,omitempty"`

	Consequence *Consequence `json:"consequence,omitempty" yaml:"consequence,omitempty"`

	// Requires hides the choice while unmet. A hidden choice is never
	// selectable.
	Requires *StateRequirement `json:"requires,omitempty" yaml:"requires,omitempty"`
}

// DialogueNode is a logical unit of the narrative graph. Nodes are authored
// statically and never mutated at runtime.
type DialogueNode struct {
	ID       string           `json:"id" yaml:"id"`
	Speaker  string           `json:"speaker,omitempty" yaml:"speaker,omitempty"`
	Variants []ContentVariant `json:"variants" yaml:"variants"`

	// Requires gates entry into the node. It is evaluated at transition
	// time; a failing gate routes through contextual fallback.
	Requires *StateRequirement `json:"requires,omitempty" yaml:"requires,omitempty"`

	Choices []Choice     `json:"choices,omitempty" yaml:"choices,omitempty"`
	OnEnter *EnterEffect `json:"on_enter,omitempty" yaml:"on_enter,omitempty"`
	Tags    []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Choice returns the choice with the given id, if present.
func (n *DialogueNode) Choice(id string) (*Choice, bool) {
	for i := range n.Choices {
		if n.Choices[i].ID == id {
			return &n.Choices[i], true
		}
	}
	return nil, false
}

// Description returns a short human-readable summary of the node, used when
// denormalizing scene context into evidence records. It is the first content
// variant's text.
func (n *DialogueNode) Description() string {
	if len(n.Variants) == 0 {
		return ""
	}
	return n.Variants[0].Text
}
