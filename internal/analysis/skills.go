package analysis

import "strings"

// Category identifies one of the fixed skill buckets.
type Category string

const (
	CategoryCoreCS    Category = "coreCS"
	CategoryLanguages Category = "languages"
	CategoryWeb       Category = "web"
	CategoryData      Category = "data"
	CategoryCloud     Category = "cloud"
	CategoryTesting   Category = "testing"
	CategoryOther     Category = "other"
)

// Categories lists every category in extraction order.
var Categories = []Category{
	CategoryCoreCS,
	CategoryLanguages,
	CategoryWeb,
	CategoryData,
	CategoryCloud,
	CategoryTesting,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryCoreCS:    "Core CS",
	CategoryLanguages: "Languages",
	CategoryWeb:       "Web / App",
	CategoryData:      "Data / Cloud",
	CategoryCloud:     "DevOps / Cloud",
	CategoryTesting:   "Testing",
	CategoryOther:     "Other/Tools",
}

// Label returns the display label for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

var skillKeywords = map[Category][]string{
	CategoryCoreCS:    {"dsa", "data structures", "algorithm", "system design", "oop", "os", "dbms", "operating systems", "computer networks", "hld", "lld", "normalization", "concurrency", "multithreading"},
	CategoryLanguages: {"java", "python", "c++", "c#", "javascript", "typescript", "golang", "ruby", "swift", "kotlin", "rust", "php", "c"},
	CategoryWeb:       {"react", "angular", "vue", "node", "express", "html", "css", "tailwind", "next.js", "redux", "flutter", "android", "ios", "shadcn", "radix", "framer motion", "vite", "webpack"},
	CategoryData:      {"sql", "mongodb", "postgresql", "mysql", "redis", "kafka", "spark", "hadoop", "pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "warehouse", "etl"},
	CategoryCloud:     {"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "ci/cd", "terraform", "ansible", "serverless", "lambda", "s3", "ec2"},
	CategoryTesting:   {"selenium", "jest", "junit", "cypress", "mocha", "manual testing", "playwright", "unit testing", "integration testing", "qa"},
	CategoryOther:     {"git", "agile", "scrum", "jira", "figma", "postman", "swagger", "graphql", "rest api", "microservices"},
}

// FallbackSkills replaces the "other" bucket when nothing matched.
var FallbackSkills = []string{"Communication", "Problem solving", "Basic coding", "Projects"}

// shortKeywordLen is the longest keyword that must match as a whole token.
const shortKeywordLen = 2

// Skills holds extracted keywords per category. Every list is non-nil so the
// stored JSON always carries seven arrays.
type Skills struct {
	CoreCS    []string `json:"coreCS"`
	Languages []string `json:"languages"`
	Web       []string `json:"web"`
	Data      []string `json:"data"`
	Cloud     []string `json:"cloud"`
	Testing   []string `json:"testing"`
	Other     []string `json:"other"`
}

// NewSkills returns a Skills value with empty, non-nil lists.
func NewSkills() Skills {
	return Skills{
		CoreCS:    []string{},
		Languages: []string{},
		Web:       []string{},
		Data:      []string{},
		Cloud:     []string{},
		Testing:   []string{},
		Other:     []string{},
	}
}

// Get returns the list for a category.
func (s Skills) Get(c Category) []string {
	switch c {
	case CategoryCoreCS:
		return s.CoreCS
	case CategoryLanguages:
		return s.Languages
	case CategoryWeb:
		return s.Web
	case CategoryData:
		return s.Data
	case CategoryCloud:
		return s.Cloud
	case CategoryTesting:
		return s.Testing
	case CategoryOther:
		return s.Other
	default:
		return nil
	}
}

func (s *Skills) set(c Category, items []string) {
	switch c {
	case CategoryCoreCS:
		s.CoreCS = items
	case CategoryLanguages:
		s.Languages = items
	case CategoryWeb:
		s.Web = items
	case CategoryData:
		s.Data = items
	case CategoryCloud:
		s.Cloud = items
	case CategoryTesting:
		s.Testing = items
	case CategoryOther:
		s.Other = items
	}
}

// All flattens the skills in category order.
func (s Skills) All() []string {
	out := make([]string, 0, s.Count())
	for _, c := range Categories {
		out = append(out, s.Get(c)...)
	}
	return out
}

// Count returns the number of listed skills across categories.
func (s Skills) Count() int {
	n := 0
	for _, c := range Categories {
		n += len(s.Get(c))
	}
	return n
}

// ExtractSkills classifies a job description into skill buckets. The second
// return value counts distinct matched keywords and is zero when the fallback
// list was substituted.
func ExtractSkills(jdText string) (Skills, int) {
	lower := strings.ToLower(jdText)
	skills := NewSkills()
	total := 0

	for _, c := range Categories {
		found := []string{}
		for _, kw := range skillKeywords[c] {
			if !containsKeyword(lower, kw) || containsString(found, kw) {
				continue
			}
			found = append(found, kw)
			total++
		}
		skills.set(c, found)
	}

	if total == 0 {
		skills.Other = append([]string(nil), FallbackSkills...)
	}
	return skills, total
}

// containsKeyword reports a substring match. Keywords of one or two letters
// ("c", "os", "qa", "s3") only match as standalone tokens; otherwise "c" would
// match nearly every description.
func containsKeyword(text, kw string) bool {
	if len(kw) > shortKeywordLen {
		return strings.Contains(text, kw)
	}
	for start := 0; start <= len(text)-len(kw); {
		idx := strings.Index(text[start:], kw)
		if idx < 0 {
			return false
		}
		pos := start + idx
		end := pos + len(kw)
		if (pos == 0 || !isTokenByte(text[pos-1])) && (end == len(text) || !isTokenByte(text[end])) {
			return true
		}
		start = pos + 1
	}
	return false
}

func isTokenByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '+' || b == '#':
		return true
	default:
		return false
	}
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
