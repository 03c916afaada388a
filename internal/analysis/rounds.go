package analysis

import "fmt"

// Round describes one interview stage.
type Round struct {
	RoundTitle   string   `json:"roundTitle"`
	FocusAreas   []string `json:"focusAreas"`
	WhyItMatters string   `json:"whyItMatters"`
}

// ChecklistItem is the per-round preparation checklist.
type ChecklistItem struct {
	Round     string   `json:"round"`
	Items     []string `json:"items"`
	Rationale string   `json:"rationale,omitempty"`
}

// DayPlan is one day of the study plan.
type DayPlan struct {
	Day   int      `json:"day"`
	Title string   `json:"title"`
	Tasks []string `json:"tasks"`
}

var enterpriseRounds = []Round{
	{
		RoundTitle:   "Round 1: Online Assessment",
		WhyItMatters: "Filters thousands of candidates. Speed and accuracy in aptitude/DSA is key.",
		FocusAreas:   []string{"Quantitative Aptitude", "Verbal Ability", "Basic Coding (Arrays/Strings)", "Core CS MCQs"},
	},
	{
		RoundTitle:   "Round 2: Technical Interview I (DSA)",
		WhyItMatters: "Validates problem-solving depth. Expect standard LeetCode Medium problems.",
		FocusAreas:   []string{"Linked Lists", "Trees/Graphs", "Stacks/Queues", "Time Complexity Analysis"},
	},
	{
		RoundTitle:   "Round 3: Technical Interview II (Core CS + System Design)",
		WhyItMatters: "Deep dive into technical knowledge and architectural understanding.",
		FocusAreas:   []string{"DBMS Normalization", "OS Concurrency", "Low Level Design", "Project Deep Dive"},
	},
	{
		RoundTitle:   "Round 4: Managerial / HR",
		WhyItMatters: "Assess long-term fit, stability, and behavioral alignment.",
		FocusAreas:   []string{"Team conflicts", "Weaknesses/Strengths", "Why this company?", "Relocation"},
	},
}

var startupRounds = []Round{
	{
		RoundTitle:   "Round 1: Practical / Screening",
		WhyItMatters: "Validates if you can write code that works. Often a take-home or live pair programming.",
		FocusAreas:   []string{"Build a small feature", "Debug existing code", "Basic DSA", "Resume walkthrough"},
	},
	{
		RoundTitle:   "Round 2: Technical Deep Dive",
		WhyItMatters: "Tests your mastery of the specific stack and engineering decision making.",
		FocusAreas:   []string{"Framework internals", "API Design", "Database Modeling", "Code Quality"},
	},
	{
		RoundTitle:   "Round 3: Founder/Culture Fit",
		WhyItMatters: "Startups need ownership. They check if you are a 'doer' and match the pace.",
		FocusAreas:   []string{"Product thinking", "Ownership examples", "Career runway", "Cultural alignment"},
	},
}

var sevenDayPlan = []DayPlan{
	{Day: 1, Title: "Input & Research", Tasks: []string{"Analyze notification details", "Research company culture", "Review role requirements"}},
	{Day: 2, Title: "Core Concepts (DSA/Logic)", Tasks: []string{"Practice arrays/strings", "Review time complexity", "Solve Medium problems"}},
	{Day: 3, Title: "Framework/System Depth", Tasks: []string{"Review specific framework docs", "Build a small POC", "Read engineering blogs"}},
	{Day: 4, Title: "CS Fundamentals", Tasks: []string{"Revise OS/DBMS keywords", "Practice SQL queries", "Review networking basics"}},
	{Day: 5, Title: "Mock Interviews", Tasks: []string{"Self-record answers", "Peer mock interview", "Review past projects"}},
	{Day: 6, Title: "Behavioral Prep", Tasks: []string{"Prepare STAR stories", "Research interviewers", "Prepare questions for them"}},
	{Day: 7, Title: "Final Revision", Tasks: []string{"Review cheat sheets", "Rest & mental prep", "Logistics check"}},
}

var baseQuestions = []string{
	"Tell me about a challenging bug you fixed.",
	"Why do you want to work here?",
	"Explain your project architecture.",
	"What are your strengths and weaknesses?",
}

// RoundMapping returns the interview sequence for the company size.
func RoundMapping(enterprise bool) []Round {
	src := startupRounds
	if enterprise {
		src = enterpriseRounds
	}
	out := make([]Round, len(src))
	for i, r := range src {
		r.FocusAreas = append([]string(nil), r.FocusAreas...)
		out[i] = r
	}
	return out
}

// Checklist derives one checklist item per round.
func Checklist(rounds []Round) []ChecklistItem {
	out := make([]ChecklistItem, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, ChecklistItem{
			Round:     r.RoundTitle,
			Items:     append([]string(nil), r.FocusAreas...),
			Rationale: r.WhyItMatters,
		})
	}
	return out
}

// StudyPlan returns the fixed seven day template.
func StudyPlan() []DayPlan {
	out := make([]DayPlan, len(sevenDayPlan))
	for i, d := range sevenDayPlan {
		d.Tasks = append([]string(nil), d.Tasks...)
		out[i] = d
	}
	return out
}

// Questions returns the interview questions; the first web skill adds one.
func Questions(skills Skills) []string {
	out := append([]string(nil), baseQuestions...)
	if len(skills.Web) > 0 {
		out = append(out, fmt.Sprintf("What is the lifecycle of a %s component?", skills.Web[0]))
	}
	return out
}
