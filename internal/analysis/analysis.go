// Package analysis is the rule-based job description analyzer. Every function
// is pure: the same input always yields the same skills, rounds and score.
package analysis

import "strings"

// Input is what the caller submits for analysis.
type Input struct {
	JDText  string
	Company string
	Role    string
}

// Result is the full output of Run.
type Result struct {
	ExtractedSkills Skills          `json:"extractedSkills"`
	TotalSkills     int             `json:"totalSkills"`
	RoundMapping    []Round         `json:"roundMapping"`
	Checklist       []ChecklistItem `json:"checklist"`
	Plan            []DayPlan       `json:"plan"`
	Questions       []string        `json:"questions"`
	ReadinessScore  int             `json:"readinessScore"`
	CompanyIntel    CompanyIntel    `json:"companyIntel"`
}

// Run analyzes a job description.
func Run(in Input) Result {
	skills, total := ExtractSkills(in.JDText)
	intel := GenerateCompanyIntel(strings.TrimSpace(in.Company))
	rounds := RoundMapping(intel.IsEnterprise())

	return Result{
		ExtractedSkills: skills,
		TotalSkills:     total,
		RoundMapping:    rounds,
		Checklist:       Checklist(rounds),
		Plan:            StudyPlan(),
		Questions:       Questions(skills),
		ReadinessScore:  ReadinessScore(total),
		CompanyIntel:    intel,
	}
}
