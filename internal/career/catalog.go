package career

import "github.com/pathwise/pathwise/pkg/domain"

// DefaultCatalog returns the built-in career paths. Declaration order
// matters: it is the tie-break for equal scores.
func DefaultCatalog() []domain.CareerPath {
	return []domain.CareerPath{
		{
			ID:   "registered_nurse",
			Name: "Registered Nurse",
			Skills: []domain.SkillRequirement{
				{Skill: "emotionalIntelligence", Level: 0.8},
				{Skill: "communication", Level: 0.7},
				{Skill: "workEthic", Level: 0.7},
				{Skill: "patience", Level: 0.6},
			},
			SalaryRange:   "$65k-$95k",
			Opportunities: []string{"hospital volunteer programs", "CNA certification courses"},
			GrowthTier:    "high",
		},
		{
			ID:   "electrician",
			Name: "Electrician",
			Skills: []domain.SkillRequirement{
				{Skill: "technicalAptitude", Level: 0.8},
				{Skill: "problemSolving", Level: 0.7},
				{Skill: "patience", Level: 0.6},
				{Skill: "workEthic", Level: 0.6},
			},
			SalaryRange:   "$55k-$90k",
			Opportunities: []string{"apprenticeship programs", "trade school intro courses"},
			GrowthTier:    "high",
		},
		{
			ID:   "software_developer",
			Name: "Software Developer",
			Skills: []domain.SkillRequirement{
				{Skill: "problemSolving", Level: 0.8},
				{Skill: "technicalAptitude", Level: 0.7},
				{Skill: "curiosity", Level: 0.6},
				{Skill: "patience", Level: 0.5},
			},
			SalaryRange:   "$70k-$130k",
			Opportunities: []string{"free bootcamp prep tracks", "open source starter projects"},
			GrowthTier:    "high",
		},
		{
			ID:   "restaurant_manager",
			Name: "Restaurant Manager",
			Skills: []domain.SkillRequirement{
				{Skill: "leadership", Level: 0.7},
				{Skill: "organization", Level: 0.7},
				{Skill: "communication", Level: 0.7},
				{Skill: "financialLiteracy", Level: 0.5},
			},
			SalaryRange:   "$45k-$70k",
			Opportunities: []string{"shift lead openings", "hospitality management certificates"},
			GrowthTier:    "medium",
		},
		{
			ID:   "graphic_designer",
			Name: "Graphic Designer",
			Skills: []domain.SkillRequirement{
				{Skill: "creativity", Level: 0.8},
				{Skill: "communication", Level: 0.6},
				{Skill: "curiosity", Level: 0.5},
			},
			SalaryRange:   "$45k-$75k",
			Opportunities: []string{"portfolio workshops", "freelance marketplaces"},
			GrowthTier:    "medium",
		},
		{
			ID:   "social_worker",
			Name: "Social Worker",
			Skills: []domain.SkillRequirement{
				{Skill: "emotionalIntelligence", Level: 0.8},
				{Skill: "communication", Level: 0.7},
				{Skill: "collaboration", Level: 0.6},
				{Skill: "patience", Level: 0.7},
			},
			SalaryRange:   "$45k-$65k",
			Opportunities: []string{"community center volunteering", "peer counseling training"},
			GrowthTier:    "medium",
		},
		{
			ID:   "financial_analyst",
			Name: "Financial Analyst",
			Skills: []domain.SkillRequirement{
				{Skill: "financialLiteracy", Level: 0.8},
				{Skill: "problemSolving", Level: 0.7},
				{Skill: "organization", Level: 0.6},
			},
			SalaryRange:   "$60k-$100k",
			Opportunities: []string{"spreadsheet modeling courses", "investment club membership"},
			GrowthTier:    "high",
		},
		{
			ID:   "carpenter",
			Name: "Carpenter",
			Skills: []domain.SkillRequirement{
				{Skill: "technicalAptitude", Level: 0.7},
				{Skill: "creativity", Level: 0.5},
				{Skill: "workEthic", Level: 0.7},
				{Skill: "patience", Level: 0.6},
			},
			SalaryRange:   "$45k-$75k",
			Opportunities: []string{"union apprenticeships", "community workshop classes"},
			GrowthTier:    "medium",
		},
	}
}
