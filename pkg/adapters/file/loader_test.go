package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pathwise/pathwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGraph = `
nodes:
  - id: maya_intro
    speaker: Maya
    variants:
      - text: "Hey! Want to see my robot?"
        emotion: excited
    choices:
      - id: say_yes
        text: "Absolutely, show me."
        next_node_id: maya_robotics_passion
        pattern: exploring
        consequence:
          trust_deltas:
            maya: 1
          flags: [met_maya]
  - id: maya_robotics_passion
    speaker: Maya
    variants:
      - text: "The stabilizer keeps glitching right before the demo."
    requires:
      min_trust:
        maya: 1
    on_enter:
      knowledge: [maya_robotics]
    choices:
      - id: debug_stabilize
        text: "Let's go through the sensor logs together, one step at a time."
        next_node_id: maya_intro
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGraph(t *testing.T) {
	loader, err := LoadGraph(writeTemp(t, "story.yaml", sampleGraph))
	require.NoError(t, err)

	ids, err := loader.NodeIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"maya_intro", "maya_robotics_passion"}, ids)

	node, err := loader.GetNode("maya_intro")
	require.NoError(t, err)
	assert.Equal(t, "Maya", node.Speaker)
	require.Len(t, node.Choices, 1)

	choice := node.Choices[0]
	assert.Equal(t, "say_yes", choice.ID)
	assert.Equal(t, "maya_robotics_passion", choice.NextNodeID)
	assert.Equal(t, domain.PatternExploring, choice.Pattern)
	require.NotNil(t, choice.Consequence)
	assert.Equal(t, 1, choice.Consequence.TrustDeltas["maya"])
	assert.Equal(t, []string{"met_maya"}, choice.Consequence.Flags)

	gated, err := loader.GetNode("maya_robotics_passion")
	require.NoError(t, err)
	require.NotNil(t, gated.Requires)
	assert.Equal(t, 1, gated.Requires.MinTrust["maya"])
	require.NotNil(t, gated.OnEnter)
	assert.Equal(t, []string{"maya_robotics"}, gated.OnEnter.Knowledge)
}

func TestLoadGraphRejectsDuplicates(t *testing.T) {
	_, err := LoadGraph(writeTemp(t, "dup.yaml", `
nodes:
  - id: a
    variants: [{text: one}]
  - id: a
    variants: [{text: two}]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node id")
}

func TestLoadSceneSkillMap(t *testing.T) {
	path := writeTemp(t, "skills.yaml", `
scenes:
  maya_robotics_passion:
    description: "Maya's robot fails right before the demo"
    choices:
      - key: debug_stabilize
        skills: [emotionalIntelligence, patience]
        justification: "Worked through a frustrating hardware failure calmly and methodically instead of giving up."
        tier: primary
`)
	m, err := LoadSceneSkillMap(path)
	require.NoError(t, err)

	scene, ok := m.Scene("maya_robotics_passion")
	require.True(t, ok)
	entry, ok := scene.Exact("debug_stabilize")
	require.True(t, ok)
	assert.Equal(t, []string{"emotionalIntelligence", "patience"}, entry.Skills)
	assert.NotEmpty(t, entry.Justification)
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "evidence:player1", []byte(`{"v":1}`)))

	blob, err := s.Load(ctx, "evidence:player1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), blob)

	_, err = s.Load(ctx, "evidence:ghost")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, s.Delete(ctx, "evidence:player1"))
	_, err = s.Load(ctx, "evidence:player1")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}
