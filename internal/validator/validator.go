// Package validator checks dialogue graphs for structural defects before
// they reach players: dangling choice targets, nodes unreachable from the
// entry point, and nodes with no content.
package validator

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/pathwise/pathwise/internal/logging"
	"github.com/pathwise/pathwise/pkg/domain"
	"github.com/pathwise/pathwise/pkg/ports"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding against the graph.
type Issue struct {
	Severity Severity
	NodeID   string
	ChoiceID string
	Message  string
}

func (i Issue) String() string {
	if i.ChoiceID != "" {
		return fmt.Sprintf("%s: node %q choice %q: %s", i.Severity, i.NodeID, i.ChoiceID, i.Message)
	}
	return fmt.Sprintf("%s: node %q: %s", i.Severity, i.NodeID, i.Message)
}

// Report aggregates findings for one graph.
type Report struct {
	Issues []Issue
	Nodes  int
}

// OK reports whether the graph has no error-severity findings. Warnings
// (like unreachable nodes) do not fail validation; dangling targets are
// tolerated at runtime by the contextual fallback but are still flagged
// as errors here so authors fix them at build time.
func (r Report) OK() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns only the error-severity findings.
func (r Report) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Validator walks a loaded graph.
type Validator struct {
	loader ports.GraphLoader
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New creates a validator over the given loader.
func New(loader ports.GraphLoader, opts ...Option) *Validator {
	v := &Validator{loader: loader, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks every node and walks reachability from the entry node.
// Findings are returned in deterministic node-id order.
func (v *Validator) Validate(entryNodeID string) (Report, error) {
	ids, err := v.loader.NodeIDs()
	if err != nil {
		return Report{}, fmt.Errorf("failed to list nodes: %w", err)
	}

	nodes := make(map[string]*domain.DialogueNode, len(ids))
	for _, id := range ids {
		node, err := v.loader.GetNode(id)
		if err != nil {
			return Report{}, fmt.Errorf("failed to load node %q: %w", id, err)
		}
		nodes[id] = node
	}

	report := Report{Nodes: len(nodes)}

	if _, ok := nodes[entryNodeID]; !ok {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			NodeID:   entryNodeID,
			Message:  "entry node does not exist",
		})
		return report, nil
	}

	sort.Strings(ids)
	for _, id := range ids {
		report.Issues = append(report.Issues, checkNode(nodes[id], nodes)...)
	}

	for _, id := range unreachable(entryNodeID, ids, nodes) {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			NodeID:   id,
			Message:  "unreachable from entry node",
		})
	}

	v.logger.Info("graph validated",
		"nodes", report.Nodes,
		"errors", len(report.Errors()),
		"issues", len(report.Issues))
	return report, nil
}

func checkNode(node *domain.DialogueNode, nodes map[string]*domain.DialogueNode) []Issue {
	var issues []Issue

	if len(node.Variants) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			NodeID:   node.ID,
			Message:  "node has no content variants",
		})
	}
	if node.Speaker == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			NodeID:   node.ID,
			Message:  "node has no speaker",
		})
	}

	seen := make(map[string]struct{}, len(node.Choices))
	for _, choice := range node.Choices {
		if _, dup := seen[choice.ID]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				NodeID:   node.ID,
				ChoiceID: choice.ID,
				Message:  "duplicate choice id",
			})
		}
		seen[choice.ID] = struct{}{}

		if choice.NextNodeID == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				NodeID:   node.ID,
				ChoiceID: choice.ID,
				Message:  "choice has no target",
			})
			continue
		}
		if _, ok := nodes[choice.NextNodeID]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				NodeID:   node.ID,
				ChoiceID: choice.ID,
				Message:  fmt.Sprintf("target node %q does not exist", choice.NextNodeID),
			})
		}
	}
	return issues
}

// unreachable walks the choice edges breadth-first from the entry and
// returns node ids never visited, in sorted order. Gating is ignored: a
// node behind a requirement is still reachable for this purpose.
func unreachable(entry string, ids []string, nodes map[string]*domain.DialogueNode) []string {
	visited := map[string]struct{}{entry: {}}
	frontier := []string{entry}

	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		node, ok := nodes[id]
		if !ok {
			continue
		}
		for _, choice := range node.Choices {
			if _, seen := visited[choice.NextNodeID]; seen {
				continue
			}
			if _, exists := nodes[choice.NextNodeID]; !exists {
				continue
			}
			visited[choice.NextNodeID] = struct{}{}
			frontier = append(frontier, choice.NextNodeID)
		}
	}

	var out []string
	for _, id := range ids {
		if _, ok := visited[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
