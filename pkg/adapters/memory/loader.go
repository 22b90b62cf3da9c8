// Package memory provides in-memory implementations of the Pathwise ports.
// They are used by tests and by embedded callers that build graphs in code.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pathwise/pathwise/pkg/domain"
)

// Loader implements ports.GraphLoader over a node map. Safe for concurrent
// use; the graph is read-only after construction in typical usage.
type Loader struct {
	mu    sync.RWMutex
	nodes map[string]domain.DialogueNode
}

// NewLoader creates a loader holding the given nodes.
func NewLoader(nodes ...domain.DialogueNode) *Loader {
	l := &Loader{nodes: make(map[string]domain.DialogueNode, len(nodes))}
	for _, n := range nodes {
		l.nodes[n.ID] = n
	}
	return l
}

// AddNode registers or replaces a node definition.
func (l *Loader) AddNode(node domain.DialogueNode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nodes[node.ID] = node
}

// GetNode retrieves a node by id.
func (l *Loader) GetNode(id string) (*domain.DialogueNode, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	node, ok := l.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	return &node, nil
}

// NodeIDs returns all node ids in sorted order.
func (l *Loader) NodeIDs() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.nodes))
	for id := range l.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
