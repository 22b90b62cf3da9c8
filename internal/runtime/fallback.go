package runtime

import (
	"context"
	"strings"

	"github.com/pathwise/pathwise/pkg/domain"
)

// characterNamespace extracts the character identifier from a node id.
// Node ids are conventionally "<character>_<scene...>"; the namespace is
// the first underscore-delimited segment.
func characterNamespace(nodeID string) string {
	if i := strings.Index(nodeID, "_"); i > 0 {
		return nodeID[:i]
	}
	return nodeID
}

// contextualFallback deterministically selects a recovery node when a
// transition's intended destination is missing or gated shut. Candidates
// are nodes sharing the source scene's character namespace, excluding the
// broken target and the source itself, taken in sorted id order so the same
// defect always resolves to the same node. Gated candidates are skipped.
// The configured hub node is the last resort; failing even that, the
// session stays on the source node rather than aborting.
func (e *Engine) contextualFallback(ctx context.Context, state *domain.SessionState, source *domain.DialogueNode, brokenTarget string) *domain.DialogueNode {
	e.metrics.ObserveFallback()

	prefix := characterNamespace(source.ID) + "_"

	ids, err := e.loader.NodeIDs()
	if err != nil {
		e.logger.Error("failed to list nodes for fallback", "error", err)
		ids = nil
	}

	for _, id := range ids {
		if id == brokenTarget || id == source.ID {
			continue
		}
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		node, err := e.loader.GetNode(id)
		if err != nil || !state.Meets(node.Requires) {
			continue
		}
		e.logger.Info("contextual fallback resolved", "source", source.ID, "broken", brokenTarget, "resolved", id)
		return node
	}

	if hub, err := e.loader.GetNode(e.hubNodeID); err == nil && state.Meets(hub.Requires) {
		e.logger.Info("contextual fallback resolved to hub", "source", source.ID, "broken", brokenTarget)
		return hub
	}

	e.logger.Error("no fallback candidate, staying on source node", "source", source.ID, "broken", brokenTarget)
	return source
}
