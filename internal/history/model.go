// Package history stores analyzed job descriptions per caller and tracks the
// caller's self-reported confidence in each extracted skill.
package history

import (
	"errors"
	"time"

	"placement-backend/internal/analysis"
)

// StorageKey is the key holding the JSON array of entries, newest first.
const StorageKey = "placement-prep-jd-history"

// MinJDLength is the shortest trimmed JD accepted for a saved analysis.
const MinJDLength = 200

// weakSkillLimit caps the "action next" list.
const weakSkillLimit = 3

var (
	ErrNotFound     = errors.New("history entry not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrJDTooShort   = errors.New("job description too short")
)

// Entry is one saved analysis.
type Entry struct {
	ID                 string                         `json:"id"`
	CreatedAt          time.Time                      `json:"createdAt"`
	UpdatedAt          time.Time                      `json:"updatedAt"`
	Company            string                         `json:"company"`
	Role               string                         `json:"role"`
	JDText             string                         `json:"jdText"`
	ExtractedSkills    analysis.Skills                `json:"extractedSkills"`
	Plan7Days          []analysis.DayPlan             `json:"plan7Days"`
	Checklist          []analysis.ChecklistItem       `json:"checklist"`
	RoundMapping       []analysis.Round               `json:"roundMapping"`
	Questions          []string                       `json:"questions"`
	BaseScore          int                            `json:"baseScore"`
	FinalScore         int                            `json:"finalScore"`
	SkillConfidenceMap map[string]analysis.Confidence `json:"skillConfidenceMap"`
	CompanyIntel       *analysis.CompanyIntel         `json:"companyIntel,omitempty"`
}

// LiveScore is the base score adjusted by the current confidence map.
func (e Entry) LiveScore() int {
	return analysis.LiveScore(e.BaseScore, e.SkillConfidenceMap)
}

// ToggleResult is returned after flipping one skill.
type ToggleResult struct {
	Skill     string              `json:"skill"`
	Status    analysis.Confidence `json:"status"`
	LiveScore int                 `json:"liveScore"`
}

func copyConfidence(in map[string]analysis.Confidence) map[string]analysis.Confidence {
	out := make(map[string]analysis.Confidence, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
