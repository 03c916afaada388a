// Package resume keeps a caller's resume builder state: the resume document,
// its template and accent color, and the final project submission.
package resume

import (
	"errors"
	"strings"
)

// Storage keys, one value each per caller.
const (
	DataKey       = "resumeBuilderData"
	TemplateKey   = "resumeBuilderTemplate"
	ColorKey      = "resumeBuilderColor"
	SubmissionKey = "rb_final_submission"
)

var ErrInvalidInput = errors.New("invalid input")

type Personal struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type Education struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	TechStack   []string `json:"techStack"`
	Description string   `json:"description"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	GitHubURL   string   `json:"githubUrl,omitempty"`
}

type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Data is the resume document.
type Data struct {
	Personal   Personal     `json:"personal"`
	Summary    string       `json:"summary"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Skills     []SkillGroup `json:"skills"`
}

// ScoreBreakdown is the ATS score with up to three next improvements.
type ScoreBreakdown struct {
	Score        int      `json:"score"`
	Suggestions  []string `json:"suggestions"`
	Improvements []string `json:"improvements"`
}

// Template is the resume layout.
type Template string

const (
	TemplateClassic Template = "classic"
	TemplateModern  Template = "modern"
	TemplateMinimal Template = "minimal"
)

// Valid reports whether t is a known layout.
func (t Template) Valid() bool {
	switch t {
	case TemplateClassic, TemplateModern, TemplateMinimal:
		return true
	}
	return false
}

// Submission holds the three links of the final project submission.
type Submission struct {
	LovableLink string `json:"lovableLink"`
	GitHubLink  string `json:"githubLink"`
	DeployedURL string `json:"deployedUrl"`
}

// IsShipped reports whether every link looks like a URL.
func (s Submission) IsShipped() bool {
	return strings.Contains(s.LovableLink, "http") &&
		strings.Contains(s.GitHubLink, "http") &&
		strings.Contains(s.DeployedURL, "http")
}

// SubmissionView is Submission plus its derived shipped flag.
type SubmissionView struct {
	Submission
	IsShipped bool `json:"isShipped"`
}

// View pairs a resume with its current score.
type View struct {
	Data  Data           `json:"data"`
	Score ScoreBreakdown `json:"score"`
}
