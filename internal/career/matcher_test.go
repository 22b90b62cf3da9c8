package career

import (
	"testing"
	"time"

	"github.com/pathwise/pathwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(demos ...domain.SkillDemonstration) domain.EvidenceSnapshot {
	bySkill := make(map[string][]domain.SkillDemonstration)
	for _, d := range demos {
		for _, tag := range d.Skills {
			bySkill[tag] = append(bySkill[tag], d)
		}
	}
	return domain.EvidenceSnapshot{
		Demonstrations:        demos,
		DemonstrationsBySkill: bySkill,
		TotalDemonstrations:   len(demos),
		TotalChoices:          len(demos),
	}
}

func demosWithSkill(tag string, n int) []domain.SkillDemonstration {
	out := make([]domain.SkillDemonstration, n)
	for i := range out {
		out[i] = domain.SkillDemonstration{
			SceneID:          "scene",
			ChoiceText:       "choice",
			SceneDescription: "a tense moment",
			Skills:           []string{tag},
			Justification:    "Showed the competency under pressure.",
			Timestamp:        time.Now(),
		}
	}
	return out
}

func TestLevelFromDemonstrationCount(t *testing.T) {
	paths := []domain.CareerPath{{
		ID:     "p",
		Name:   "P",
		Skills: []domain.SkillRequirement{{Skill: "patience", Level: 0.6}},
	}}
	m := NewMatcher(paths)

	matches := m.Match(snapshotOf(demosWithSkill("patience", 3)...))
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Assessments, 1)
	assert.InDelta(t, 0.30, matches[0].Assessments[0].Current, 1e-9)
	assert.InDelta(t, 0.30, matches[0].Score, 1e-9)
	assert.InDelta(t, 0.30, matches[0].Assessments[0].Gap, 1e-9)
}

func TestLevelCappedAtOne(t *testing.T) {
	paths := []domain.CareerPath{{
		ID:     "p",
		Name:   "P",
		Skills: []domain.SkillRequirement{{Skill: "patience", Level: 0.6}},
	}}
	m := NewMatcher(paths)

	matches := m.Match(snapshotOf(demosWithSkill("patience", 15)...))
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Assessments[0].Current, 1e-9)
	assert.Zero(t, matches[0].Assessments[0].Gap)
}

func TestUnknownSkillDefaultsToHalf(t *testing.T) {
	paths := []domain.CareerPath{{
		ID:   "p",
		Name: "P",
		Skills: []domain.SkillRequirement{
			{Skill: "patience", Level: 0.6},
			{Skill: "creativity", Level: 0.6},
		},
	}}
	m := NewMatcher(paths)

	matches := m.Match(snapshotOf(demosWithSkill("patience", 6)...))
	require.Len(t, matches, 1)

	byskill := map[string]domain.SkillAssessment{}
	for _, a := range matches[0].Assessments {
		byskill[a.Skill] = a
	}
	assert.InDelta(t, 0.6, byskill["patience"].Current, 1e-9)
	assert.InDelta(t, 0.5, byskill["creativity"].Current, 1e-9)
	assert.InDelta(t, 0.55, matches[0].Score, 1e-9)
}

func TestReadinessTiers(t *testing.T) {
	path := func(level float64) []domain.CareerPath {
		return []domain.CareerPath{{
			ID:     "p",
			Name:   "P",
			Skills: []domain.SkillRequirement{{Skill: "patience", Level: level}},
		}}
	}
	snap := snapshotOf(demosWithSkill("patience", 5)...) // level 0.50

	t.Run("near ready", func(t *testing.T) {
		matches := NewMatcher(path(0.55)).Match(snap) // gap 0.05
		assert.Equal(t, domain.ReadinessNearReady, matches[0].Readiness)
	})
	t.Run("developing", func(t *testing.T) {
		matches := NewMatcher(path(0.65)).Match(snap) // gap 0.15
		assert.Equal(t, domain.ReadinessDeveloping, matches[0].Readiness)
	})
	t.Run("exploring", func(t *testing.T) {
		matches := NewMatcher(path(0.80)).Match(snap) // gap 0.30
		assert.Equal(t, domain.ReadinessExploring, matches[0].Readiness)
	})
}

func TestTopNAndDeclarationOrderTieBreak(t *testing.T) {
	// Eight paths requiring the same single skill all score identically;
	// ranking must keep catalog order and cut at the default top six.
	var paths []domain.CareerPath
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, id := range ids {
		paths = append(paths, domain.CareerPath{
			ID:     id,
			Name:   id,
			Skills: []domain.SkillRequirement{{Skill: "patience", Level: 0.6}},
		})
	}
	m := NewMatcher(paths)

	matches := m.Match(snapshotOf(demosWithSkill("patience", 2)...))
	require.Len(t, matches, 6)
	for i, want := range ids[:6] {
		assert.Equal(t, want, matches[i].PathID)
	}
}

func TestRankingDescendingByScore(t *testing.T) {
	snap := snapshotOf(append(
		demosWithSkill("technicalAptitude", 8),
		demosWithSkill("problemSolving", 7)...,
	)...)
	m := NewMatcher(DefaultCatalog())

	matches := m.Match(snap)
	require.NotEmpty(t, matches)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
	// The technical paths must outrank the purely interpersonal ones here.
	assert.Contains(t, []string{"electrician", "software_developer"}, matches[0].PathID)
}

func TestEvidenceOnlyFromIntersectingDemonstrations(t *testing.T) {
	paths := []domain.CareerPath{{
		ID:     "p",
		Name:   "P",
		Skills: []domain.SkillRequirement{{Skill: "patience", Level: 0.6}},
	}}
	m := NewMatcher(paths)

	relevant := domain.SkillDemonstration{
		SceneID:          "maya_robotics_passion",
		SceneDescription: "Maya's robot fails before the demo",
		Skills:           []string{"patience"},
		Justification:    "Worked through the sensor logs step by step.",
	}
	irrelevant := domain.SkillDemonstration{
		SceneID:          "jordan_office",
		SceneDescription: "Jordan's budget review",
		Skills:           []string{"financialLiteracy"},
		Justification:    "Asked pointed questions about the program budget.",
	}

	matches := m.Match(snapshotOf(relevant, irrelevant))
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Evidence, 1)
	assert.Contains(t, matches[0].Evidence[0], "sensor logs")
	assert.NotContains(t, matches[0].Evidence[0], "budget")
}

func TestEvidenceCapped(t *testing.T) {
	paths := []domain.CareerPath{{
		ID:     "p",
		Name:   "P",
		Skills: []domain.SkillRequirement{{Skill: "patience", Level: 0.6}},
	}}
	m := NewMatcher(paths)

	demos := make([]domain.SkillDemonstration, 0, 6)
	for i := 0; i < 6; i++ {
		d := demosWithSkill("patience", 1)[0]
		d.Justification = d.Justification + " " + string(rune('a'+i))
		demos = append(demos, d)
	}

	matches := m.Match(snapshotOf(demos...))
	require.Len(t, matches, 1)
	assert.Len(t, matches[0].Evidence, DefaultMaxEvidence)
}

func TestEmptySnapshotStillRanks(t *testing.T) {
	m := NewMatcher(DefaultCatalog())

	matches := m.Match(domain.EvidenceSnapshot{})
	require.Len(t, matches, DefaultTopN)
	for _, match := range matches {
		assert.NotEqual(t, domain.ReadinessNearReady, match.Readiness,
			"no path is near ready without any evidence")
		assert.Empty(t, match.Evidence)
		for _, a := range match.Assessments {
			assert.InDelta(t, 0.5, a.Current, 1e-9)
		}
	}
}
