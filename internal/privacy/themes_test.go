package privacy

import (
	"strings"
	"testing"
)

func TestGeneraliseStrength(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Great MEMORY for names and dates", "Strong memory skills"},
		{"loves to listen to podcasts", "Strong auditory processing"},
		{"paints beautiful landscapes", "Creative expression"},
		{"solves logic puzzles quickly", "Mathematical thinking"},
		{"works well with peers", "Social engagement"},
	}
	for _, tt := range tests {
		if got := GeneraliseStrength(tt.text); got != tt.want {
			t.Errorf("GeneraliseStrength(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

// The same wording generalises differently per source list.
func TestStrengthAndGoalTablesAreIndependent(t *testing.T) {
	text := "enjoys technology projects"
	if got := GeneraliseStrength(text); got != "Technology proficiency" {
		t.Errorf("strength theme = %q", got)
	}
	if got := GeneraliseGoal(text); got != "Technology/STEM interests" {
		t.Errorf("goal theme = %q", got)
	}
}

// An earlier rule wins even when a later pattern also matches.
func TestTableOrderPrecedence(t *testing.T) {
	// Matches both the memory rule (first) and the reading rule (later).
	text := "remembers every book she reads"
	if got := GeneraliseStrength(text); got != "Strong memory skills" {
		t.Errorf("got %q, want the earlier rule's theme", got)
	}
	// Matches both post-secondary (first) and career (second).
	goal := "college then a career in nursing"
	if got := GeneraliseGoal(goal); got != "Post-secondary education" {
		t.Errorf("got %q, want the earlier rule's theme", got)
	}
}

func TestGeneraliseFallback(t *testing.T) {
	long := "zzyzx qwfp vbnm ghjk tyui oiuy extra words here"
	got := GeneraliseStrength(long)
	if got != "zzyzx qwfp vbnm ghjk tyui..." {
		t.Errorf("fallback = %q", got)
	}
	short := "zzyzx qwfp"
	if got := GeneraliseStrength(short); got != "zzyzx qwfp" {
		t.Errorf("short fallback = %q", got)
	}
	if GeneraliseStrength("") != "" {
		t.Error("empty text must generalise to empty")
	}
}

func TestGeneraliseDeterministic(t *testing.T) {
	inputs := []string{
		"Great memory for names",
		"zzyzx qwfp vbnm ghjk tyui oiuy",
		"enjoys technology projects",
	}
	for _, in := range inputs {
		first := GeneraliseStrength(in)
		for i := 0; i < 5; i++ {
			if got := GeneraliseStrength(in); got != first {
				t.Fatalf("GeneraliseStrength(%q) not deterministic: %q vs %q", in, first, got)
			}
		}
	}
}

func TestFallbackStripsMostEntropy(t *testing.T) {
	text := "zzyzx qwfp vbnm ghjk tyui secret diagnosis details follow here"
	got := GeneraliseStrength(text)
	if strings.Contains(got, "secret") || strings.Contains(got, "diagnosis") {
		t.Errorf("fallback %q kept words beyond the first five", got)
	}
}
