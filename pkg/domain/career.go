package domain

// ReadinessTier is a coarse bucket summarizing how close accumulated
// evidence is to a career path's required skill profile.
type ReadinessTier string

const (
	ReadinessNearReady  ReadinessTier = "near_ready"
	ReadinessDeveloping ReadinessTier = "developing"
	ReadinessExploring  ReadinessTier = "exploring"
)

// SkillRequirement is one required competency of a career path with its
// target level in [0, 1].
type SkillRequirement struct {
	Skill string  `json:"skill" yaml:"skill"`
	Level float64 `json:"level" yaml:"level"`
}

// CareerPath is static reference data describing a real-world career.
// Declaration order in the catalog is meaningful: it breaks ranking ties.
type CareerPath struct {
	ID            string             `json:"id" yaml:"id"`
	Name          string             `json:"name" yaml:"name"`
	Skills        []SkillRequirement `json:"skills" yaml:"skills"`
	SalaryRange   string             `json:"salary_range,omitempty" yaml:"salary_range,omitempty"`
	Opportunities []string           `json:"opportunities,omitempty" yaml:"opportunities,omitempty"`
	GrowthTier    string             `json:"growth_tier,omitempty" yaml:"growth_tier,omitempty"`
}

// SkillAssessment compares the player's current internal level against a
// path requirement. Gap is zero when the requirement is already met.
type SkillAssessment struct {
	Skill    string  `json:"skill"`
	Current  float64 `json:"current"`
	Required float64 `json:"required"`
	Gap      float64 `json:"gap"`
}

// CareerMatch is a derived, non-persistent ranking entry. Evidence strings
// are drawn verbatim from real demonstrations whose tags intersect the
// path's required skills; they are never fabricated.
type CareerMatch struct {
	PathID      string            `json:"path_id"`
	Name        string            `json:"name"`
	Score       float64           `json:"score"`
	Assessments []SkillAssessment `json:"assessments"`
	Readiness   ReadinessTier     `json:"readiness"`
	Evidence    []string          `json:"evidence"`
	SalaryRange string            `json:"salary_range,omitempty"`
	GrowthTier  string            `json:"growth_tier,omitempty"`
}
