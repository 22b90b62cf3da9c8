package domain

import "strings"

// ChoiceMapping is one authored entry of a scene's skill map. Key is the
// authored choice id for new content; for legacy content it may be a
// fragment of the display text, matched by substring as a compatibility
// path.
type ChoiceMapping struct {
	Key           string   `json:"key" yaml:"key"`
	Skills        []string `json:"skills" yaml:"skills"`
	Justification string   `json:"justification" yaml:"justification"`
	Tier          string   `json:"tier,omitempty" yaml:"tier,omitempty"`
}

// SceneMapping holds the authored skill mappings for a single scene.
// Choice mappings are ordered: fuzzy resolution takes the first match.
type SceneMapping struct {
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Choices     []ChoiceMapping `json:"choices" yaml:"choices"`
}

// Exact returns the mapping whose key equals the given choice id.
func (m *SceneMapping) Exact(choiceID string) (*ChoiceMapping, bool) {
	for i := range m.Choices {
		if m.Choices[i].Key == choiceID {
			return &m.Choices[i], true
		}
	}
	return nil, false
}

// Fuzzy returns the first mapping whose key is a substring of the display
// text (or vice versa), case-insensitively. This is a legacy compatibility
// path; newly authored content should rely on exact choice ids.
func (m *SceneMapping) Fuzzy(displayText string) (*ChoiceMapping, bool) {
	if displayText == "" {
		return nil, false
	}
	text := strings.ToLower(displayText)
	for i := range m.Choices {
		key := strings.ToLower(m.Choices[i].Key)
		if key == "" {
			continue
		}
		if strings.Contains(text, key) || strings.Contains(key, text) {
			return &m.Choices[i], true
		}
	}
	return nil, false
}

// SceneSkillMap is the read-only lookup from scene id to authored skill
// mappings. It is pure data, consulted by the evidence extractor.
type SceneSkillMap map[string]SceneMapping

// Scene returns the mapping for a scene id, if authored.
func (m SceneSkillMap) Scene(sceneID string) (*SceneMapping, bool) {
	entry, ok := m[sceneID]
	if !ok {
		return nil, false
	}
	return &entry, true
}
