package resume

import "strings"

var actionVerbs = []string{"built", "led", "designed", "improved", "developed", "managed", "created", "spearheaded", "optimized"}

const (
	maxScore        = 100
	maxImprovements = 3
	minSummaryLen   = 50
	minDetailLen    = 10
	minSkills       = 5
)

// Score computes the ATS score. Checks run in a fixed order; the first three
// unmet ones become improvements.
func Score(d Data) ScoreBreakdown {
	score := 0
	var improvements []string
	check := func(ok bool, points int, hint string) {
		if ok {
			score += points
			return
		}
		if hint != "" {
			improvements = append(improvements, hint)
		}
	}

	summary := strings.TrimSpace(d.Summary)

	check(strings.TrimSpace(d.Personal.FullName) != "", 10, "Add your full name (+10)")
	check(strings.TrimSpace(d.Personal.Email) != "", 10, "Add an email address (+10)")
	check(len([]rune(summary)) > minSummaryLen, 10, "Write a summary > 50 chars (+10)")
	check(hasDetailedExperience(d.Experience), 15, "Add experience with details (+15)")
	check(len(d.Education) > 0, 10, "Add education history (+10)")
	check(countSkills(d.Skills) >= minSkills, 10, "Add at least 5 skills (+10)")
	check(len(d.Projects) > 0, 10, "Add at least 1 project (+10)")
	check(strings.TrimSpace(d.Personal.Phone) != "", 5, "Add a phone number (+5)")
	check(strings.TrimSpace(d.Personal.LinkedIn) != "", 5, "Add LinkedIn link (+5)")
	check(strings.TrimSpace(d.Personal.GitHub) != "", 5, "Add GitHub link (+5)")

	verbHint := ""
	if summary != "" {
		verbHint = "Use action verbs in summary (+10)"
	}
	check(hasActionVerb(d.Summary), 10, verbHint)

	if score > maxScore {
		score = maxScore
	}
	if len(improvements) > maxImprovements {
		improvements = improvements[:maxImprovements]
	}
	if improvements == nil {
		improvements = []string{}
	}
	return ScoreBreakdown{Score: score, Suggestions: []string{}, Improvements: improvements}
}

func hasDetailedExperience(items []Experience) bool {
	for _, e := range items {
		if len([]rune(strings.TrimSpace(e.Description))) > minDetailLen {
			return true
		}
	}
	return false
}

func countSkills(groups []SkillGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Items)
	}
	return n
}

// hasActionVerb matches verbs as substrings, so "skilled" counts for "led".
func hasActionVerb(summary string) bool {
	lower := strings.ToLower(summary)
	for _, v := range actionVerbs {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}
