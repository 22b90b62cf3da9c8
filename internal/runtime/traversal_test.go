package runtime_test

import (
	"context"
	"testing"

	"github.com/pathwise/pathwise/internal/runtime"
	"github.com/pathwise/pathwise/pkg/adapters/memory"
	"github.com/pathwise/pathwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph() *memory.Loader {
	return memory.NewLoader(
		domain.DialogueNode{
			ID:      "start",
			Speaker: "Narrator",
			Variants: []domain.ContentVariant{
				{Text: "A new day at the community center."},
			},
			Choices: []domain.Choice{
				{ID: "meet_maya", Text: "Say hi to Maya", NextNodeID: "maya_intro",
					Consequence: &domain.Consequence{
						TrustDeltas: map[string]int{"maya": 2},
						Flags:       []string{"met_maya"},
					}},
				{ID: "secret_door", Text: "Use the staff entrance", NextNodeID: "maya_intro",
					Requires: &domain.StateRequirement{Flags: []string{"staff_badge"}}},
			},
		},
		domain.DialogueNode{
			ID:      "maya_intro",
			Speaker: "Maya",
			Variants: []domain.ContentVariant{
				{Text: "Oh hey! Perfect timing.", Emotion: "excited"},
			},
			OnEnter: &domain.EnterEffect{
				Knowledge:   []string{"maya_exists"},
				TrustFloors: map[string]int{"maya": 1},
			},
			Choices: []domain.Choice{
				{ID: "ask_robot", Text: "What are you building?", NextNodeID: "maya_workshop"},
				{ID: "trusted_only", Text: "Tell me what's really wrong", NextNodeID: "maya_workshop",
					Requires: &domain.StateRequirement{MinTrust: map[string]int{"maya": 5}}},
			},
		},
		domain.DialogueNode{
			ID:       "maya_workshop",
			Speaker:  "Maya",
			Variants: []domain.ContentVariant{{Text: "Welcome to the chaos."}},
			Choices: []domain.Choice{
				{ID: "dangling", Text: "Open the mystery door", NextNodeID: "does_not_exist"},
				{ID: "to_gated", Text: "Head to the back room", NextNodeID: "maya_backroom"},
				{ID: "loop", Text: "Look around again", NextNodeID: "maya_intro"},
			},
		},
		domain.DialogueNode{
			ID:       "maya_backroom",
			Speaker:  "Maya",
			Variants: []domain.ContentVariant{{Text: "Not everyone gets to see this."}},
			Requires: &domain.StateRequirement{MinTrust: map[string]int{"maya": 8}},
		},
		domain.DialogueNode{
			ID:       "hub",
			Speaker:  "Narrator",
			Variants: []domain.ContentVariant{{Text: "The main hall."}},
		},
	)
}

func TestStart(t *testing.T) {
	eng := runtime.NewEngine(testGraph())
	state, node, err := eng.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "start", node.ID)
	assert.Equal(t, "start", state.CurrentNodeID)
}

func TestAvailableChoicesGating(t *testing.T) {
	eng := runtime.NewEngine(testGraph())
	node, err := testGraph().GetNode("start")
	require.NoError(t, err)

	t.Run("hidden while condition false", func(t *testing.T) {
		state := domain.NewSessionState("start")
		choices := eng.AvailableChoices(node, state)
		require.Len(t, choices, 1)
		assert.Equal(t, "meet_maya", choices[0].ID)
	})

	t.Run("visible once condition holds", func(t *testing.T) {
		state := domain.NewSessionState("start")
		state.Flags.Add("staff_badge")
		choices := eng.AvailableChoices(node, state)
		require.Len(t, choices, 2)
	})
}

func TestApplyChoiceRejectsIllegal(t *testing.T) {
	eng := runtime.NewEngine(testGraph())
	ctx := context.Background()
	state, _, err := eng.Start(ctx)
	require.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		_, err := eng.ApplyChoice(ctx, state, "no_such_choice")
		var illegal *domain.IllegalChoiceError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, "start", illegal.NodeID)
	})

	t.Run("hidden choice is not selectable", func(t *testing.T) {
		_, err := eng.ApplyChoice(ctx, state, "secret_door")
		var illegal *domain.IllegalChoiceError
		require.ErrorAs(t, err, &illegal)
	})
}

func TestApplyChoiceConsequenceAndHistory(t *testing.T) {
	eng := runtime.NewEngine(testGraph())
	ctx := context.Background()
	state, _, err := eng.Start(ctx)
	require.NoError(t, err)

	out, err := eng.ApplyChoice(ctx, state, "meet_maya")
	require.NoError(t, err)

	assert.Equal(t, "maya_intro", out.State.CurrentNodeID)
	assert.Equal(t, 2, out.State.Trust("maya"))
	assert.True(t, out.State.Flags.Has("met_maya"))
	require.Len(t, out.State.History, 1)
	assert.Equal(t, "meet_maya", out.State.History[0].ChoiceID)

	// Input snapshot is untouched: apply is a pure reducer.
	assert.Equal(t, "start", state.CurrentNodeID)
	assert.Equal(t, 0, state.Trust("maya"))
	assert.Empty(t, state.History)
}

func TestTrustClampedToRange(t *testing.T) {
	loader := memory.NewLoader(
		domain.DialogueNode{
			ID:       "start",
			Variants: []domain.ContentVariant{{Text: "hi"}},
			Choices: []domain.Choice{
				{ID: "big", Text: "x", NextNodeID: "start",
					Consequence: &domain.Consequence{TrustDeltas: map[string]int{"maya": 99}}},
				{ID: "small", Text: "y", NextNodeID: "start",
					Consequence: &domain.Consequence{TrustDeltas: map[string]int{"maya": -99}}},
			},
		},
	)
	eng := runtime.NewEngine(loader)
	ctx := context.Background()
	state, _, err := eng.Start(ctx)
	require.NoError(t, err)

	out, err := eng.ApplyChoice(ctx, state, "big")
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipMax, out.State.Trust("maya"))

	out, err = eng.ApplyChoice(ctx, out.State, "small")
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipMin, out.State.Trust("maya"))
}

func TestOnEnterIdempotent(t *testing.T) {
	eng := runtime.NewEngine(testGraph())
	ctx := context.Background()
	state, _, err := eng.Start(ctx)
	require.NoError(t, err)

	// First visit applies the enter effects.
	out, err := eng.ApplyChoice(ctx, state, "meet_maya")
	require.NoError(t, err)
	assert.True(t, out.State.Knowledge.Has("maya_exists"))
	assert.Equal(t, 2, out.State.Trust("maya"), "floor of 1 must not override higher trust")

	// Cycle back through the workshop; re-entering maya_intro re-applies
	// the effects, which must change nothing.
	out2, err := eng.ApplyChoice(ctx, out.State, "ask_robot")
	require.NoError(t, err)
	out3, err := eng.ApplyChoice(ctx, out2.State, "loop")
	require.NoError(t, err)

	assert.Equal(t, "maya_intro", out3.State.CurrentNodeID)
	assert.Equal(t, out.State.Trust("maya"), out3.State.Trust("maya"))
	assert.Equal(t, out.State.Knowledge.Values(), out3.State.Knowledge.Values())
	assert.Equal(t, out.State.Flags.Values(), out3.State.Flags.Values())
}

func TestFallbackOnDanglingTarget(t *testing.T) {
	eng := runtime.NewEngine(testGraph())
	ctx := context.Background()

	run := func() string {
		state, _, err := eng.Start(ctx)
		require.NoError(t, err)
		out, err := eng.ApplyChoice(ctx, state, "meet_maya")
		require.NoError(t, err)
		out, err = eng.ApplyChoice(ctx, out.State, "ask_robot")
		require.NoError(t, err)
		out, err = eng.ApplyChoice(ctx, out.State, "dangling")
		require.NoError(t, err)
		assert.True(t, out.FellBack)
		return out.Node.ID
	}

	first := run()
	second := run()
	assert.Equal(t, first, second, "fallback must be deterministic")
	// Candidates in sorted order within the "maya" namespace, excluding the
	// source (maya_workshop) and skipping the gated backroom: maya_intro.
	assert.Equal(t, "maya_intro", first)
}

func TestFallbackOnGatedTarget(t *testing.T) {
	eng := runtime.NewEngine(testGraph())
	ctx := context.Background()
	state, _, err := eng.Start(ctx)
	require.NoError(t, err)

	out, err := eng.ApplyChoice(ctx, state, "meet_maya")
	require.NoError(t, err)
	out, err = eng.ApplyChoice(ctx, out.State, "ask_robot")
	require.NoError(t, err)

	// maya_backroom requires trust 8; the session has 2.
	out, err = eng.ApplyChoice(ctx, out.State, "to_gated")
	require.NoError(t, err)
	assert.True(t, out.FellBack)
	assert.NotEqual(t, "maya_backroom", out.Node.ID)
}

func TestFallbackToHubWhenNamespaceExhausted(t *testing.T) {
	loader := memory.NewLoader(
		domain.DialogueNode{
			ID:       "solo_scene",
			Variants: []domain.ContentVariant{{Text: "alone"}},
			Choices:  []domain.Choice{{ID: "go", Text: "x", NextNodeID: "missing"}},
		},
		domain.DialogueNode{ID: "hub", Variants: []domain.ContentVariant{{Text: "hall"}}},
	)
	eng := runtime.NewEngine(loader, runtime.WithEntryNode("solo_scene"))
	ctx := context.Background()
	state, _, err := eng.Start(ctx)
	require.NoError(t, err)

	out, err := eng.ApplyChoice(ctx, state, "go")
	require.NoError(t, err)
	assert.True(t, out.FellBack)
	assert.Equal(t, "hub", out.Node.ID)
}

func TestContinueScenario(t *testing.T) {
	// A single "(Continue)" choice must transition without re-triggering
	// enter effects applied earlier in the session.
	loader := memory.NewLoader(
		domain.DialogueNode{
			ID:       "alex_jordan_fear",
			Speaker:  "Alex",
			Variants: []domain.ContentVariant{{Text: "I was scared of being different."}},
			OnEnter:  &domain.EnterEffect{Knowledge: []string{"alex_fear"}},
			Choices: []domain.Choice{
				{ID: "fear_to_difference", Text: "(Continue)", NextNodeID: "alex_jordan_difference"},
			},
		},
		domain.DialogueNode{
			ID:       "alex_jordan_difference",
			Speaker:  "Alex",
			Variants: []domain.ContentVariant{{Text: "Then I realized different was the point."}},
			OnEnter:  &domain.EnterEffect{Knowledge: []string{"alex_difference"}},
		},
	)
	eng := runtime.NewEngine(loader, runtime.WithEntryNode("alex_jordan_fear"))
	ctx := context.Background()

	state, _, err := eng.Start(ctx)
	require.NoError(t, err)
	require.True(t, state.Knowledge.Has("alex_fear"))

	choices := eng.AvailableChoices(mustNode(t, loader, "alex_jordan_fear"), state)
	require.Len(t, choices, 1)
	assert.Equal(t, "(Continue)", choices[0].Text)

	out, err := eng.ApplyChoice(ctx, state, "fear_to_difference")
	require.NoError(t, err)
	assert.Equal(t, "alex_jordan_difference", out.State.CurrentNodeID)
	assert.False(t, out.FellBack)
	assert.Equal(t, []string{"alex_difference", "alex_fear"}, out.State.Knowledge.Values())
}

func TestLifecycleHooks(t *testing.T) {
	var entered []string
	var applied []string
	hooks := domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, ev *domain.NodeEvent) {
			entered = append(entered, ev.NodeID)
		},
		OnChoiceApplied: func(_ context.Context, ev *domain.ChoiceEvent) {
			applied = append(applied, ev.ChoiceID)
		},
	}
	eng := runtime.NewEngine(testGraph(), runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	state, _, err := eng.Start(ctx)
	require.NoError(t, err)
	_, err = eng.ApplyChoice(ctx, state, "meet_maya")
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "maya_intro"}, entered)
	assert.Equal(t, []string{"meet_maya"}, applied)
}

func mustNode(t *testing.T, loader *memory.Loader, id string) *domain.DialogueNode {
	t.Helper()
	node, err := loader.GetNode(id)
	require.NoError(t, err)
	return node
}
