package history

import (
	"strings"
	"testing"
	"time"

	"placement-backend/internal/analysis"
)

func TestRenderPlan(t *testing.T) {
	result := analysis.Run(analysis.Input{JDText: "React and AWS", Company: "Acme Bank"})
	intel := result.CompanyIntel
	entry := Entry{
		ID:                 "e-1",
		CreatedAt:          time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC),
		Company:            "Acme Bank",
		Role:               "SDE 1",
		ExtractedSkills:    result.ExtractedSkills,
		Plan7Days:          result.Plan,
		RoundMapping:       result.RoundMapping,
		Questions:          result.Questions,
		BaseScore:          result.ReadinessScore,
		FinalScore:         result.ReadinessScore,
		SkillConfidenceMap: map[string]analysis.Confidence{"react": analysis.ConfidenceKnow},
		CompanyIntel:       &intel,
	}

	out := RenderPlan(entry)

	for _, want := range []string{
		"PLACEMENT PREPARATION PLAN\n--------------------------\nCompany: Acme Bank\nRole: SDE 1\nDate: 3/4/2026\nReadiness Score: 53",
		"Industry: FinTech",
		"Web & Mobile: react [READY]",
		"Cloud & DevOps: aws [PRACTICE]",
		"[Day 1] ",
		"    - ",
		"[ ] Round 1",
		"IV. INTERVIEW QUESTIONS\n1. ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Languages:") {
		t.Fatalf("empty categories must be omitted:\n%s", out)
	}
	if out != strings.TrimSpace(out) {
		t.Fatalf("expected trimmed output")
	}
}

func TestRenderPlanWithoutIntel(t *testing.T) {
	out := RenderPlan(Entry{ExtractedSkills: analysis.NewSkills()})
	if !strings.Contains(out, "Company: N/A\nRole: N/A") || !strings.Contains(out, "Industry: N/A") {
		t.Fatalf("expected N/A placeholders:\n%s", out)
	}
}

func TestExportFileName(t *testing.T) {
	if got := ExportFileName(Entry{Company: "Acme"}); got != "placement-plan-Acme.txt" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := ExportFileName(Entry{}); got != "placement-plan-analysis.txt" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := ExportFileName(Entry{Company: `Acme"; filename="evil.exe`}); got != "placement-plan-Acme__ filename__evil.exe.txt" {
		t.Fatalf("unexpected name %q", got)
	}
}
