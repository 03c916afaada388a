package analysis

import (
	"reflect"
	"testing"
)

func TestLiveScore(t *testing.T) {
	conf := map[string]Confidence{"react": ConfidenceKnow, "aws": ConfidenceKnow, "sql": ConfidencePractice}
	if got := LiveScore(53, conf); got != 55 {
		t.Fatalf("expected 55, got %d", got)
	}
	if got := LiveScore(53, nil); got != 53 {
		t.Fatalf("expected base score with empty map, got %d", got)
	}
}

func TestLiveScoreClamps(t *testing.T) {
	high := map[string]Confidence{}
	low := map[string]Confidence{}
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		high[s] = ConfidenceKnow
		low[s] = ConfidencePractice
	}
	if got := LiveScore(95, high); got != 100 {
		t.Fatalf("expected clamp at 100, got %d", got)
	}
	if got := LiveScore(5, low); got != 0 {
		t.Fatalf("expected clamp at 0, got %d", got)
	}
}

func TestToggleFromDefaultAddsTwo(t *testing.T) {
	conf := map[string]Confidence{}
	base := LiveScore(53, conf)

	if got := Toggle(conf, "react"); got != ConfidenceKnow {
		t.Fatalf("absent skill defaults to practice, toggle should give know; got %s", got)
	}
	if got := LiveScore(53, conf); got != base+2 {
		t.Fatalf("expected %d, got %d", base+2, got)
	}

	if got := Toggle(conf, "react"); got != ConfidencePractice {
		t.Fatalf("expected practice, got %s", got)
	}
	if got := LiveScore(53, conf); got != base-2 {
		t.Fatalf("expected %d, got %d", base-2, got)
	}
}

func TestToggleClampsAtBounds(t *testing.T) {
	conf := map[string]Confidence{}
	Toggle(conf, "react")
	if got := LiveScore(100, conf); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	Toggle(conf, "react")
	if got := LiveScore(0, conf); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestWeakSkills(t *testing.T) {
	skills := NewSkills()
	skills.CoreCS = []string{"dsa"}
	skills.Web = []string{"react", "node"}
	skills.Cloud = []string{"aws"}

	got := WeakSkills(skills, map[string]Confidence{"react": ConfidenceKnow}, 3)
	want := []string{"dsa", "node", "aws"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := WeakSkills(NewSkills(), nil, 3); len(got) != 0 {
		t.Fatalf("expected no weak skills, got %v", got)
	}
}
