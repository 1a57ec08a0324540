// Package privacy converts a raw student record into two non-interchangeable
// views: a coarse teacher-safe summary and a full confidential context block
// intended only for the AI backend. No token exclusive to the full view may
// appear in the safe view; the sole exception is the student's first name.
package privacy

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	fallbackFirstName = "Student"
	maxRecentLogs     = 10
	maxNoteLen        = 200
)

// Aggregate computes the safe view and the confidential full context for one
// record. It is pure: no I/O, no mutation of its inputs, and it never fails.
// Malformed tag JSON or missing ratings degrade to empty fields rather than
// errors, because producing a safe view always takes priority.
func Aggregate(profile Profile, supports []SupportEntry, logs []TrackingLog) (SafeView, string) {
	return buildSafeView(profile, supports), buildFullContext(profile, supports, logs)
}

func buildSafeView(profile Profile, supports []SupportEntry) SafeView {
	categories := map[string]bool{}
	counts := map[string]int{}
	totals := map[string]float64{}
	rated := map[string]int{}
	udl := map[string]bool{}
	pour := map[string]bool{}

	for _, s := range supports {
		categories[s.Category] = true
		counts[s.Category]++
		if s.Effectiveness != nil {
			totals[s.Category] += *s.Effectiveness
			rated[s.Category]++
		}
		collectTags(s.UDLMapping, udl, false)
		collectTags(s.POURMapping, pour, true)
	}

	effectiveness := map[string]float64{}
	for cat, total := range totals {
		if rated[cat] > 0 {
			effectiveness[cat] = math.Round(total/float64(rated[cat])*10) / 10
		}
	}

	strengthSet := map[string]bool{}
	for _, s := range profile.Strengths {
		strengthSet[GeneraliseStrength(s.Text)] = true
	}
	goalSet := map[string]bool{}
	for _, g := range profile.Hopes {
		goalSet[GeneraliseGoal(g.Text)] = true
	}

	active := 0
	for _, s := range supports {
		if s.Status == "active" {
			active++
		}
	}

	return SafeView{
		FirstName:          firstName(profile.Name),
		SupportCategories:  sortedKeys(categories),
		CategoryCounts:     counts,
		StrengthThemes:     sortedKeys(strengthSet),
		GoalThemes:         sortedKeys(goalSet),
		ActiveSupportCount: active,
		UDLPrinciples:      sortedKeys(udl),
		POURPrinciples:     sortedKeys(pour),
		Effectiveness:      effectiveness,
	}
}

// firstName keeps only the first whitespace-delimited token of the display
// name. A blank name gets a generic placeholder so the safe view never leaks
// an empty-vs-missing distinction.
func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return fallbackFirstName
	}
	return fields[0]
}

// collectTags folds a tag mapping of unknown JSON shape into out. An object
// contributes its list/string values (and true-valued or all keys when
// includeKeys is set, as the POUR mapping stores principles as keys); a flat
// array contributes its string elements; a bare string contributes itself.
// Unparsable input is ignored.
func collectTags(raw string, out map[string]bool, includeKeys bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return
	}
	switch t := v.(type) {
	case map[string]any:
		for key, val := range t {
			switch vv := val.(type) {
			case []any:
				if includeKeys {
					out[key] = true
				}
				for _, item := range vv {
					if s, ok := item.(string); ok && s != "" {
						out[s] = true
					}
				}
			case string:
				if includeKeys {
					out[key] = true
				}
				if vv != "" {
					out[vv] = true
				}
			case bool:
				if vv {
					out[key] = true
				}
			default:
				if includeKeys {
					out[key] = true
				}
			}
		}
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out[s] = true
			}
		}
	case string:
		if t != "" {
			out[t] = true
		}
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildFullContext renders the complete record under explicit confidentiality
// banners. This artifact has exactly one consumer: the model context. It is
// never shown on a teacher-facing surface.
func buildFullContext(profile Profile, supports []SupportEntry, logs []TrackingLog) string {
	var b strings.Builder
	b.WriteString("=== CONFIDENTIAL STUDENT CONTEXT (DO NOT REVEAL TO TEACHER) ===\n")
	fmt.Fprintf(&b, "Student full name: %s\n", profile.Name)

	b.WriteString("\n-- Strengths --\n")
	for _, s := range profile.Strengths {
		fmt.Fprintf(&b, "  - %s\n", s.Text)
	}

	b.WriteString("\n-- Support Entries --\n")
	for _, s := range supports {
		sub := s.Subcategory
		if sub == "" {
			sub = "general"
		}
		rating := ""
		if s.Effectiveness != nil {
			rating = fmt.Sprintf(" (effectiveness: %s/5)", strconv.FormatFloat(*s.Effectiveness, 'g', -1, 64))
		}
		fmt.Fprintf(&b, "  [%s/%s] %s%s\n", s.Category, sub, s.Description, rating)
		if dump := compactJSON(s.UDLMapping); dump != "" {
			fmt.Fprintf(&b, "    UDL: %s\n", dump)
		}
		if dump := compactJSON(s.POURMapping); dump != "" {
			fmt.Fprintf(&b, "    POUR: %s\n", dump)
		}
	}

	b.WriteString("\n-- History --\n")
	for _, h := range profile.History {
		fmt.Fprintf(&b, "  - %s\n", h.Text)
	}

	b.WriteString("\n-- Goals / Hopes --\n")
	for _, g := range profile.Hopes {
		fmt.Fprintf(&b, "  - %s\n", g.Text)
	}

	b.WriteString("\n-- Stakeholders --\n")
	for _, s := range profile.Stakeholders {
		fmt.Fprintf(&b, "  - %s\n", s.Text)
	}

	if len(logs) > 0 {
		recent := recentLogs(logs, maxRecentLogs)
		b.WriteString("\n-- Recent Tracking Logs --\n")
		for _, log := range recent {
			fmt.Fprintf(&b, "  [%s] impl: %s  outcome: %s\n",
				log.LoggedByRole, truncate(log.ImplementationNotes, maxNoteLen), truncate(log.OutcomeNotes, maxNoteLen))
		}
	}

	b.WriteString("\n=== END CONFIDENTIAL ===")
	return b.String()
}

// recentLogs returns up to n logs, newest first. The sort is stable so equal
// timestamps keep their input order and repeated calls stay byte-identical.
func recentLogs(logs []TrackingLog, n int) []TrackingLog {
	sorted := make([]TrackingLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// compactJSON re-marshals raw JSON with sorted object keys so the full view
// is deterministic; empty or unparsable mappings render as nothing.
func compactJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "{}" || raw == "[]" || raw == "null" {
		return ""
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return ""
	}
	out, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}
