package analysis

const (
	readinessBase    = 45
	readinessPerHit  = 4
	readinessCeiling = 95

	confidenceStep = 2
)

// Confidence is the self-reported state of a skill.
type Confidence string

const (
	ConfidenceKnow     Confidence = "know"
	ConfidencePractice Confidence = "practice"
)

// Valid reports whether c is a recognized state.
func (c Confidence) Valid() bool {
	return c == ConfidenceKnow || c == ConfidencePractice
}

// ReadinessScore maps the number of distinct matched keywords to a score.
func ReadinessScore(matched int) int {
	if matched < 0 {
		matched = 0
	}
	score := readinessBase + readinessPerHit*matched
	if score > readinessCeiling {
		return readinessCeiling
	}
	return score
}

// LiveScore adjusts a base score by the confidence map and clamps to [0,100].
func LiveScore(base int, confidence map[string]Confidence) int {
	know, practice := 0, 0
	for _, status := range confidence {
		switch status {
		case ConfidenceKnow:
			know++
		case ConfidencePractice:
			practice++
		}
	}
	return clamp(base+confidenceStep*know-confidenceStep*practice, 0, 100)
}

// StatusOf returns the confidence of a skill; unknown skills need practice.
func StatusOf(confidence map[string]Confidence, skill string) Confidence {
	if status, ok := confidence[skill]; ok && status.Valid() {
		return status
	}
	return ConfidencePractice
}

// Toggle flips a skill between practice and know in place and returns the new
// state.
func Toggle(confidence map[string]Confidence, skill string) Confidence {
	next := ConfidenceKnow
	if StatusOf(confidence, skill) == ConfidenceKnow {
		next = ConfidencePractice
	}
	confidence[skill] = next
	return next
}

// WeakSkills lists up to limit skills still marked for practice, in category
// order.
func WeakSkills(skills Skills, confidence map[string]Confidence, limit int) []string {
	out := []string{}
	for _, s := range skills.All() {
		if limit > 0 && len(out) >= limit {
			break
		}
		if StatusOf(confidence, s) == ConfidencePractice {
			out = append(out, s)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
