package runtime

import (
	"context"
	"fmt"

	"github.com/pathwise/pathwise/pkg/domain"
)

// Outcome is the result of applying a choice: the post-transition state
// snapshot, the node now active, the choice that was taken, and whether the
// transition had to route through contextual fallback.
type Outcome struct {
	State    *domain.SessionState
	Node     *domain.DialogueNode
	Choice   domain.Choice
	FellBack bool
}

// Start creates a fresh session state positioned at the entry node and
// applies its enter effects.
func (e *Engine) Start(ctx context.Context) (*domain.SessionState, *domain.DialogueNode, error) {
	node, err := e.loader.GetNode(e.entryNodeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entry node %q: %w", e.entryNodeID, err)
	}

	state := domain.NewSessionState(node.ID)
	state = e.enterNode(ctx, state, node)
	return state, node, nil
}

// AvailableChoices filters a node's choices by their visibility conditions
// against the given state. Order-preserving; no side effects.
func (e *Engine) AvailableChoices(node *domain.DialogueNode, state *domain.SessionState) []domain.Choice {
	out := make([]domain.Choice, 0, len(node.Choices))
	for _, c := range node.Choices {
		if state.Meets(c.Requires) {
			out = append(out, c)
		}
	}
	return out
}

// ApplyChoice validates the choice against the currently-available set,
// applies its consequence to a cloned state, resolves the target node
// (routing through contextual fallback if the target is missing or its gate
// fails) and applies the target's enter effects. The input state is never
// mutated; the apply is atomic with respect to in-memory state.
func (e *Engine) ApplyChoice(ctx context.Context, state *domain.SessionState, choiceID string) (*Outcome, error) {
	node, err := e.loader.GetNode(state.CurrentNodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current node %q: %w", state.CurrentNodeID, err)
	}

	var chosen *domain.Choice
	for _, c := range e.AvailableChoices(node, state) {
		if c.ID == choiceID {
			chosen = &c
			break
		}
	}
	if chosen == nil {
		e.metrics.ObserveChoice("illegal")
		return nil, &domain.IllegalChoiceError{NodeID: node.ID, ChoiceID: choiceID}
	}

	next := e.applyConsequence(state, node, chosen)

	target, fellBack := e.resolveTarget(ctx, next, node, chosen)
	next.CurrentNodeID = target.ID
	next = e.enterNode(ctx, next, target)

	if e.hooks.OnChoiceApplied != nil {
		e.hooks.OnChoiceApplied(ctx, &domain.ChoiceEvent{
			NodeID:     node.ID,
			ChoiceID:   chosen.ID,
			NextNodeID: target.ID,
			Fallback:   fellBack,
			Timestamp:  e.now(),
		})
	}
	e.metrics.ObserveChoice("applied")

	return &Outcome{State: next, Node: target, Choice: *chosen, FellBack: fellBack}, nil
}

// applyConsequence is the pure reducer for a taken choice: clone, clamp
// trust deltas, union flags and knowledge, append to history.
func (e *Engine) applyConsequence(state *domain.SessionState, node *domain.DialogueNode, choice *domain.Choice) *domain.SessionState {
	next := state.Clone()

	if c := choice.Consequence; c != nil {
		for character, delta := range c.TrustDeltas {
			rel := next.Relationships[character]
			rel.Trust = domain.ClampRelationship(rel.Trust + delta)
			next.Relationships[character] = rel
		}
		next.Flags.Union(c.Flags)
		next.Knowledge.Union(c.Knowledge)
	}

	next.History = append(next.History, domain.ChoiceRecord{
		NodeID:    node.ID,
		ChoiceID:  choice.ID,
		Text:      choice.Text,
		Timestamp: e.now(),
	})
	return next
}

// resolveTarget loads the choice's target node, falling back contextually
// when the target is missing or its entry gate fails under the
// post-consequence state.
func (e *Engine) resolveTarget(ctx context.Context, state *domain.SessionState, source *domain.DialogueNode, choice *domain.Choice) (*domain.DialogueNode, bool) {
	target, err := e.loader.GetNode(choice.NextNodeID)
	if err != nil {
		e.logger.Warn("unresolved transition target, routing to contextual fallback",
			"choice", choice.ID, "error", &domain.UnresolvedTargetError{
				SourceNodeID: source.ID,
				TargetNodeID: choice.NextNodeID,
			})
		return e.contextualFallback(ctx, state, source, choice.NextNodeID), true
	}

	if !state.Meets(target.Requires) {
		e.logger.Warn("transition target gated shut, routing to contextual fallback",
			"source", source.ID, "choice", choice.ID, "target", target.ID)
		return e.contextualFallback(ctx, state, source, target.ID), true
	}

	return target, false
}

// enterNode applies the node's enter effects to a cloned state and fires
// the enter hook. Effects are idempotent (set-union, trust floors), so
// re-entry through a cycle is harmless.
func (e *Engine) enterNode(ctx context.Context, state *domain.SessionState, node *domain.DialogueNode) *domain.SessionState {
	next := state

	if eff := node.OnEnter; eff != nil {
		next = state.Clone()
		next.Flags.Union(eff.Flags)
		next.Knowledge.Union(eff.Knowledge)
		for character, floor := range eff.TrustFloors {
			rel := next.Relationships[character]
			if floor := domain.ClampRelationship(floor); rel.Trust < floor {
				rel.Trust = floor
				next.Relationships[character] = rel
			}
		}
	}

	if e.hooks.OnNodeEnter != nil {
		e.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
			NodeID:    node.ID,
			Speaker:   node.Speaker,
			Timestamp: e.now(),
		})
	}
	return next
}
