package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampRelationship(t *testing.T) {
	assert.Equal(t, 0, ClampRelationship(-3))
	assert.Equal(t, 10, ClampRelationship(42))
	assert.Equal(t, 7, ClampRelationship(7))
}

func TestSessionStateClone(t *testing.T) {
	s := NewSessionState("start")
	s.Flags.Add("met_maya")
	s.Relationships["maya"] = Relationship{Trust: 4}
	s.History = append(s.History, ChoiceRecord{NodeID: "start", ChoiceID: "c1"})

	clone := s.Clone()
	clone.Flags.Add("extra")
	clone.Relationships["maya"] = Relationship{Trust: 9}
	clone.History = append(clone.History, ChoiceRecord{NodeID: "x"})

	assert.False(t, s.Flags.Has("extra"), "clone mutation leaked into original")
	assert.Equal(t, 4, s.Trust("maya"))
	assert.Len(t, s.History, 1)
}

func TestSessionStateMeets(t *testing.T) {
	s := NewSessionState("start")
	s.Relationships["maya"] = Relationship{Trust: 5}
	s.Knowledge.Add("maya_background")
	s.Flags.Add("chapter_one")

	t.Run("nil requirement always passes", func(t *testing.T) {
		assert.True(t, s.Meets(nil))
	})

	t.Run("trust minimum", func(t *testing.T) {
		assert.True(t, s.Meets(&StateRequirement{MinTrust: map[string]int{"maya": 5}}))
		assert.False(t, s.Meets(&StateRequirement{MinTrust: map[string]int{"maya": 6}}))
		assert.False(t, s.Meets(&StateRequirement{MinTrust: map[string]int{"alex": 1}}))
	})

	t.Run("knowledge and flags", func(t *testing.T) {
		assert.True(t, s.Meets(&StateRequirement{
			Knowledge: []string{"maya_background"},
			Flags:     []string{"chapter_one"},
		}))
		assert.False(t, s.Meets(&StateRequirement{Knowledge: []string{"secret"}}))
		assert.False(t, s.Meets(&StateRequirement{Flags: []string{"chapter_two"}}))
	})
}

func TestStringSetJSONRoundTrip(t *testing.T) {
	s := NewStringSet("b", "a", "c")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b","c"]`, string(data))

	var decoded StringSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestSceneMappingResolution(t *testing.T) {
	m := SceneMapping{
		Description: "Maya talks about her robotics project",
		Choices: []ChoiceMapping{
			{Key: "debug_stabilize", Skills: []string{"emotionalIntelligence", "patience"}, Justification: "Stayed calm and methodical while helping debug a failing robot under time pressure."},
			{Key: "suggest rebuild", Skills: []string{"problemSolving"}, Justification: "Proposed a structural redesign instead of patching symptoms."},
		},
	}

	t.Run("exact wins", func(t *testing.T) {
		entry, ok := m.Exact("debug_stabilize")
		require.True(t, ok)
		assert.Equal(t, []string{"emotionalIntelligence", "patience"}, entry.Skills)
	})

	t.Run("fuzzy is first match, case-insensitive", func(t *testing.T) {
		entry, ok := m.Fuzzy("Maybe Suggest Rebuilding the frame")
		require.True(t, ok)
		assert.Equal(t, "suggest rebuild", entry.Key)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := m.Fuzzy("walk away silently")
		assert.False(t, ok)
	})

	t.Run("empty text never matches", func(t *testing.T) {
		_, ok := m.Fuzzy("")
		assert.False(t, ok)
	})
}
