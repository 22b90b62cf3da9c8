// Package evidence turns applied choices into durable skill demonstrations
// and owns their retention-bounded, persistence-backed log.
package evidence

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pathwise/pathwise/internal/logging"
	"github.com/pathwise/pathwise/pkg/domain"
)

// Demonstration sources, reported alongside extraction results so callers
// can track how evidence was resolved.
const (
	SourceAuthoredExact = "authored_exact"
	SourceAuthoredFuzzy = "authored_fuzzy"
	SourcePattern       = "pattern"
	SourceKeyword       = "keyword"
	SourceNone          = "none"
)

// patternSkills is the fixed fallback table from trait pattern to skills,
// used only for scenes without an authored map.
var patternSkills = map[string][]string{
	domain.PatternAnalytical: {"criticalThinking", "problemSolving", "attentionToDetail"},
	domain.PatternHelping:    {"emotionalIntelligence", "collaboration", "communication"},
	domain.PatternBuilding:   {"creativity", "technicalAptitude", "problemSolving"},
	domain.PatternPatience:   {"patience", "emotionalIntelligence", "workEthic"},
	domain.PatternExploring:  {"curiosity", "adaptability", "criticalThinking"},
}

// patternJustifications phrases the generated justification per pattern.
var patternJustifications = map[string]string{
	domain.PatternAnalytical: "broke the situation down and reasoned through it before acting",
	domain.PatternHelping:    "prioritized another person's needs and offered direct support",
	domain.PatternBuilding:   "chose to make or fix something hands-on rather than talk around it",
	domain.PatternPatience:   "stayed with a slow, frustrating process instead of rushing it",
	domain.PatternExploring:  "followed curiosity into unfamiliar territory to learn more",
}

// keywordSkills maps lowercase text fragments to skills that are unioned
// into the result independently of the primary resolution.
var keywordSkills = []struct {
	fragment string
	skill    string
}{
	{"salary", "financialLiteracy"},
	{"budget", "financialLiteracy"},
	{"money", "financialLiteracy"},
	{"team", "collaboration"},
	{"together", "collaboration"},
	{"plan", "organization"},
	{"schedule", "organization"},
	{"listen", "communication"},
}

// Extractor converts a taken choice into zero or more skill demonstrations.
// It is pure given (choice, scene, state): it never mutates the store.
type Extractor struct {
	scenes domain.SceneSkillMap
	logger *slog.Logger
	now    func() time.Time
}

// ExtractorOption configures the extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets a structured logger for content-defect warnings.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ExtractorOption {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExtractor creates an extractor over the authored scene-skill map.
// A nil map is valid: extraction then relies on patterns and keywords only.
func NewExtractor(scenes domain.SceneSkillMap, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		scenes: scenes,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract resolves the skills demonstrated by a taken choice, in strict
// priority order: authored exact match, authored fuzzy match, pattern
// fallback (only for scenes without an authored map), then keyword
// augmentation unioned on top. The returned source describes how the
// primary skills were resolved.
func (e *Extractor) Extract(scene *domain.DialogueNode, choice *domain.Choice, state *domain.SessionState) ([]domain.SkillDemonstration, string) {
	var (
		skills        []string
		justification string
		source        = SourceNone
		description   = scene.Description()
	)

	if mapping, ok := e.scenes.Scene(scene.ID); ok {
		if mapping.Description != "" {
			description = mapping.Description
		}
		if entry, found := mapping.Exact(choice.ID); found {
			skills, justification, source = entry.Skills, entry.Justification, SourceAuthoredExact
		} else if entry, found := mapping.Fuzzy(choice.Text); found {
			skills, justification, source = entry.Skills, entry.Justification, SourceAuthoredFuzzy
		}
	} else if choice.Pattern != "" {
		if fallback, known := patternSkills[choice.Pattern]; known {
			skills = fallback
			justification = fmt.Sprintf("In %q, %s.", scene.ID, patternJustifications[choice.Pattern])
			source = SourcePattern
		} else {
			// Content defect, not a runtime error: log and continue.
			e.logger.Warn("content defect: unknown trait pattern",
				"error", &domain.UnknownPatternError{
					SceneID:  scene.ID,
					ChoiceID: choice.ID,
					Pattern:  choice.Pattern,
				})
		}
	}

	augmented := keywordMatches(choice.Text)
	skills = unionSkills(skills, augmented)

	if len(skills) == 0 {
		return nil, SourceNone
	}
	if source == SourceNone {
		source = SourceKeyword
		justification = fmt.Sprintf("The choice %q touched on %s directly.", choice.Text, strings.Join(augmented, ", "))
	}

	demo := domain.SkillDemonstration{
		SceneID:          scene.ID,
		ChoiceText:       choice.Text,
		SceneDescription: description,
		Skills:           skills,
		Justification:    justification,
		Timestamp:        e.now(),
	}
	return []domain.SkillDemonstration{demo}, source
}

// keywordMatches scans choice text for the fixed keyword table.
func keywordMatches(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, kw := range keywordSkills {
		if strings.Contains(lower, kw.fragment) {
			out = append(out, kw.skill)
		}
	}
	return out
}

// unionSkills appends extras not already present, preserving order.
func unionSkills(base, extras []string) []string {
	seen := make(map[string]struct{}, len(base))
	out := make([]string, 0, len(base)+len(extras))
	for _, s := range base {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range extras {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
