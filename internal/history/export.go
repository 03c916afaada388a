package history

import (
	"fmt"
	"strings"

	"placement-backend/internal/analysis"
	"placement-backend/internal/shared/util"
)

var exportLabels = map[analysis.Category]string{
	analysis.CategoryCoreCS:    "Core CS & Fundamentals",
	analysis.CategoryLanguages: "Languages",
	analysis.CategoryWeb:       "Web & Mobile",
	analysis.CategoryData:      "Data & Databases",
	analysis.CategoryCloud:     "Cloud & DevOps",
	analysis.CategoryTesting:   "Testing",
	analysis.CategoryOther:     "Tools & Others",
}

// ExportFileName is the download name for an entry's plan. The company name is
// reduced to header-safe characters.
func ExportFileName(e Entry) string {
	name := util.AttachmentName(e.Company)
	if name == "" {
		name = "analysis"
	}
	return "placement-plan-" + name + ".txt"
}

// RenderPlan formats an entry as the plain-text preparation plan.
func RenderPlan(e Entry) string {
	var b strings.Builder

	company := e.Company
	industry, size, focus := "N/A", "N/A", "N/A"
	if e.CompanyIntel != nil {
		if e.CompanyIntel.Name != "" {
			company = e.CompanyIntel.Name
		}
		industry = orNA(e.CompanyIntel.Industry)
		size = orNA(e.CompanyIntel.Size)
		focus = orNA(e.CompanyIntel.HiringFocus)
	}

	b.WriteString("PLACEMENT PREPARATION PLAN\n")
	b.WriteString("--------------------------\n")
	fmt.Fprintf(&b, "Company: %s\n", orNA(company))
	fmt.Fprintf(&b, "Role: %s\n", orNA(e.Role))
	fmt.Fprintf(&b, "Date: %s\n", e.CreatedAt.UTC().Format("1/2/2006"))
	fmt.Fprintf(&b, "Readiness Score: %d\n", e.LiveScore())
	b.WriteString("\nCOMPANY INTEL\n")
	b.WriteString("-------------\n")
	fmt.Fprintf(&b, "Industry: %s\n", industry)
	fmt.Fprintf(&b, "Size: %s\n", size)
	fmt.Fprintf(&b, "Hiring Focus: %s\n", focus)

	b.WriteString("\nI. SKILLS CHECKLIST\n")
	var lines []string
	for _, c := range analysis.Categories {
		skills := e.ExtractedSkills.Get(c)
		if len(skills) == 0 {
			continue
		}
		marked := make([]string, len(skills))
		for i, s := range skills {
			tag := "PRACTICE"
			if analysis.StatusOf(e.SkillConfidenceMap, s) == analysis.ConfidenceKnow {
				tag = "READY"
			}
			marked[i] = fmt.Sprintf("%s [%s]", s, tag)
		}
		lines = append(lines, exportLabels[c]+": "+strings.Join(marked, ", "))
	}
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString("\n\nII. 7-DAY PLAN\n")
	days := make([]string, len(e.Plan7Days))
	for i, p := range e.Plan7Days {
		tasks := make([]string, len(p.Tasks))
		for j, t := range p.Tasks {
			tasks[j] = "    - " + t
		}
		days[i] = fmt.Sprintf("[Day %d] %s\n%s", p.Day, p.Title, strings.Join(tasks, "\n"))
	}
	b.WriteString(strings.Join(days, "\n\n"))

	b.WriteString("\n\nIII. RECRUITMENT PROCESS\n")
	rounds := make([]string, len(e.RoundMapping))
	for i, r := range e.RoundMapping {
		rounds[i] = fmt.Sprintf("[ ] %s\n    Rationale: %s\n    Focus: %s", r.RoundTitle, r.WhyItMatters, strings.Join(r.FocusAreas, ", "))
	}
	b.WriteString(strings.Join(rounds, "\n\n"))

	b.WriteString("\n\nIV. INTERVIEW QUESTIONS\n")
	questions := make([]string, len(e.Questions))
	for i, q := range e.Questions {
		questions[i] = fmt.Sprintf("%d. %s", i+1, q)
	}
	b.WriteString(strings.Join(questions, "\n"))

	return strings.TrimSpace(b.String())
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
