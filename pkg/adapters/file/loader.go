package file

import (
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/pathwise/pathwise/pkg/domain"
	"gopkg.in/yaml.v3"
)

// graphDocument is the on-disk shape of a story file.
type graphDocument struct {
	Nodes []map[string]any `yaml:"nodes"`
}

// Loader implements ports.GraphLoader over a YAML story file. The whole
// graph is loaded once at construction (arena style); runtime access is
// map lookups only.
type Loader struct {
	nodes map[string]domain.DialogueNode
	ids   []string
}

// LoadGraph parses a YAML story file into a Loader. Node documents are
// decoded in two stages (YAML to generic maps, then mapstructure into the
// domain types) so that authored files survive loose typing.
func LoadGraph(path string) (*Loader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	var doc graphDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse graph file: %w", err)
	}

	l := &Loader{nodes: make(map[string]domain.DialogueNode, len(doc.Nodes))}
	for i, rawNode := range doc.Nodes {
		var node domain.DialogueNode
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "yaml",
			WeaklyTypedInput: true,
			Result:           &node,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build node decoder: %w", err)
		}
		if err := decoder.Decode(rawNode); err != nil {
			return nil, fmt.Errorf("failed to decode node %d: %w", i, err)
		}
		if node.ID == "" {
			return nil, fmt.Errorf("node %d has no id", i)
		}
		if _, dup := l.nodes[node.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", node.ID)
		}
		l.nodes[node.ID] = node
		l.ids = append(l.ids, node.ID)
	}
	sort.Strings(l.ids)
	return l, nil
}

// GetNode retrieves a node by id.
func (l *Loader) GetNode(id string) (*domain.DialogueNode, error) {
	node, ok := l.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	return &node, nil
}

// NodeIDs returns all node ids in sorted order.
func (l *Loader) NodeIDs() ([]string, error) {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out, nil
}

// LoadSceneSkillMap parses an authored scene-skill YAML file.
func LoadSceneSkillMap(path string) (domain.SceneSkillMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene-skill file: %w", err)
	}
	var doc struct {
		Scenes domain.SceneSkillMap `yaml:"scenes"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene-skill file: %w", err)
	}
	return doc.Scenes, nil
}

// LoadCareerCatalog parses a career path catalog YAML file. Declaration
// order is preserved; it breaks ranking ties.
func LoadCareerCatalog(path string) ([]domain.CareerPath, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read career catalog: %w", err)
	}
	var doc struct {
		Paths []domain.CareerPath `yaml:"paths"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse career catalog: %w", err)
	}
	return doc.Paths, nil
}
