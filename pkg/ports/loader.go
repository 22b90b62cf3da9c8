package ports

import "github.com/pathwise/pathwise/pkg/domain"

// GraphLoader defines how the engine retrieves dialogue node definitions.
// Graphs are authored statically and pre-validated offline; loaders are
// read-only at runtime.
type GraphLoader interface {
	// GetNode retrieves a node by id. It returns domain.ErrNodeNotFound
	// (possibly wrapped) when the id does not resolve.
	GetNode(id string) (*domain.DialogueNode, error)

	// NodeIDs returns all node ids in the graph. Used by the offline
	// validator and by contextual-fallback resolution; the order must be
	// deterministic.
	NodeIDs() ([]string, error)
}
