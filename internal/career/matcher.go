// Package career ranks predefined career paths against accumulated skill
// evidence and produces explainable, evidence-backed matches.
package career

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/pathwise/pathwise/internal/logging"
	"github.com/pathwise/pathwise/pkg/domain"
)

// Policy constants. These are named and overridable rather than load-bearing
// magic numbers; see the matcher options.
const (
	// DefaultSkillIncrement is the internal level gained per demonstration
	// of a tag, capped at 1.0.
	DefaultSkillIncrement = 0.10
	// DefaultUnknownLevel is assumed for required skills with no evidence
	// at all, so unexplored-but-plausible paths are not unfairly punished.
	DefaultUnknownLevel = 0.5
	// DefaultNearReadyGap and DefaultDevelopingGap are the readiness tier
	// thresholds on the average gap across a path's required skills.
	DefaultNearReadyGap  = 0.10
	DefaultDevelopingGap = 0.20
	// DefaultTopN bounds the ranking output.
	DefaultTopN = 6
	// DefaultMaxEvidence bounds evidence strings per match.
	DefaultMaxEvidence = 3
)

// Matcher ranks career paths. It only ever reads evidence snapshots; it
// never mutates the store and may be invoked at any time.
type Matcher struct {
	paths         []domain.CareerPath
	increment     float64
	unknownLevel  float64
	nearReadyGap  float64
	developingGap float64
	topN          int
	maxEvidence   int
	logger        *slog.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithSkillIncrement overrides the per-demonstration level increment.
func WithSkillIncrement(inc float64) MatcherOption {
	return func(m *Matcher) {
		if inc > 0 {
			m.increment = inc
		}
	}
}

// WithUnknownLevel overrides the assumed level for unexplored skills.
func WithUnknownLevel(level float64) MatcherOption {
	return func(m *Matcher) {
		m.unknownLevel = level
	}
}

// WithReadinessThresholds overrides the tier thresholds.
func WithReadinessThresholds(nearReady, developing float64) MatcherOption {
	return func(m *Matcher) {
		m.nearReadyGap = nearReady
		m.developingGap = developing
	}
}

// WithTopN overrides the ranking size.
func WithTopN(n int) MatcherOption {
	return func(m *Matcher) {
		if n > 0 {
			m.topN = n
		}
	}
}

// WithMatcherLogger sets a structured logger.
func WithMatcherLogger(logger *slog.Logger) MatcherOption {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMatcher creates a matcher over the given path catalog. Catalog
// declaration order is preserved and breaks ranking ties.
func NewMatcher(paths []domain.CareerPath, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		paths:         paths,
		increment:     DefaultSkillIncrement,
		unknownLevel:  DefaultUnknownLevel,
		nearReadyGap:  DefaultNearReadyGap,
		developingGap: DefaultDevelopingGap,
		topN:          DefaultTopN,
		maxEvidence:   DefaultMaxEvidence,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match ranks the catalog against the snapshot and returns the top paths,
// descending by score, ties broken by declaration order.
func (m *Matcher) Match(snap domain.EvidenceSnapshot) []domain.CareerMatch {
	levels := m.levels(snap)

	matches := make([]domain.CareerMatch, 0, len(m.paths))
	for _, path := range m.paths {
		matches = append(matches, m.matchPath(path, levels, snap))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > m.topN {
		matches = matches[:m.topN]
	}
	return matches
}

// levels derives the internal per-tag skill level from demonstration
// counts. This number is never exposed to the player; only gap, readiness
// and evidence derivatives leave this package.
func (m *Matcher) levels(snap domain.EvidenceSnapshot) map[string]float64 {
	out := make(map[string]float64)
	for tag, count := range snap.SkillCounts() {
		level := float64(count) * m.increment
		if level > 1.0 {
			level = 1.0
		}
		out[tag] = level
	}
	return out
}

func (m *Matcher) matchPath(path domain.CareerPath, levels map[string]float64, snap domain.EvidenceSnapshot) domain.CareerMatch {
	var scoreSum, gapSum float64
	assessments := make([]domain.SkillAssessment, 0, len(path.Skills))

	for _, req := range path.Skills {
		current, known := levels[req.Skill]
		if !known {
			current = m.unknownLevel
		}
		gap := req.Level - current
		if gap < 0 {
			gap = 0
		}
		scoreSum += current
		gapSum += gap
		assessments = append(assessments, domain.SkillAssessment{
			Skill:    req.Skill,
			Current:  current,
			Required: req.Level,
			Gap:      gap,
		})
	}

	var score, avgGap float64
	if len(path.Skills) > 0 {
		score = scoreSum / float64(len(path.Skills))
		avgGap = gapSum / float64(len(path.Skills))
	}

	return domain.CareerMatch{
		PathID:      path.ID,
		Name:        path.Name,
		Score:       score,
		Assessments: assessments,
		Readiness:   m.readiness(avgGap),
		Evidence:    m.evidence(path, snap),
		SalaryRange: path.SalaryRange,
		GrowthTier:  path.GrowthTier,
	}
}

// readiness is a pure function of the average gap with fixed thresholds.
func (m *Matcher) readiness(avgGap float64) domain.ReadinessTier {
	switch {
	case avgGap < m.nearReadyGap:
		return domain.ReadinessNearReady
	case avgGap < m.developingGap:
		return domain.ReadinessDeveloping
	default:
		return domain.ReadinessExploring
	}
}

// evidence builds display strings only from demonstrations whose tags
// intersect the path's required skills. Nothing is ever fabricated.
func (m *Matcher) evidence(path domain.CareerPath, snap domain.EvidenceSnapshot) []string {
	required := make(map[string]struct{}, len(path.Skills))
	for _, req := range path.Skills {
		required[req.Skill] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, d := range snap.Demonstrations {
		if len(out) >= m.maxEvidence {
			break
		}
		if !intersects(d.Skills, required) {
			continue
		}
		line := fmt.Sprintf("%s (%s)", d.Justification, d.SceneDescription)
		if d.SceneDescription == "" {
			line = d.Justification
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

func intersects(tags []string, required map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := required[t]; ok {
			return true
		}
	}
	return false
}
