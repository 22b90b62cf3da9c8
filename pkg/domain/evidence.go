package domain

import "time"

// SkillDemonstration is a recorded, justified instance of evidence that a
// player's choice reflects a named competency. Demonstrations are append-only
// log entries: immutable after creation, eligible for deletion only through
// the evidence store's retention policy.
type SkillDemonstration struct {
	SceneID          string    `json:"scene_id"`
	ChoiceText       string    `json:"choice_text"`
	SceneDescription string    `json:"scene_description"`
	Skills           []string  `json:"skills"`
	Justification    string    `json:"justification"`
	Timestamp        time.Time `json:"timestamp"`
}

// HasSkill reports whether the demonstration carries the given tag.
func (d *SkillDemonstration) HasSkill(tag string) bool {
	for _, s := range d.Skills {
		if s == tag {
			return true
		}
	}
	return false
}

// SkillMilestone is a snapshot taken at fixed choice-count checkpoints
// (the first choice, then every tenth).
type SkillMilestone struct {
	Checkpoint     string    `json:"checkpoint"`
	Demonstrations int       `json:"demonstrations"`
	Timestamp      time.Time `json:"timestamp"`
}

// EvidenceSnapshot is the read-only aggregate handed to consumers
// (career matching, dashboards, reports). It never exposes the raw internal
// skill-level numbers, only the demonstrations themselves.
type EvidenceSnapshot struct {
	Demonstrations        []SkillDemonstration            `json:"demonstrations"`
	DemonstrationsBySkill map[string][]SkillDemonstration `json:"demonstrations_by_skill"`
	Milestones            []SkillMilestone                `json:"milestones"`
	TotalDemonstrations   int                             `json:"total_demonstrations"`
	TotalChoices          int                             `json:"total_choices"`
}

// SkillCounts returns the number of demonstrations per tag.
func (s *EvidenceSnapshot) SkillCounts() map[string]int {
	counts := make(map[string]int, len(s.DemonstrationsBySkill))
	for tag, demos := range s.DemonstrationsBySkill {
		counts[tag] = len(demos)
	}
	return counts
}
