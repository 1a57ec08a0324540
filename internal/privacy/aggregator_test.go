package privacy

import (
	"strings"
	"testing"
	"time"
)

func rating(v float64) *float64 { return &v }

func testProfile() Profile {
	return Profile{
		Name: "Maya Chen",
		Strengths: []Item{
			{Text: "Exceptional auditory memory for verbal instructions"},
			{Text: "Skilled at using assistive technology like ZoomText"},
		},
		History: []Item{
			{Text: "Diagnosed with Stargardt disease at age 8"},
		},
		Hopes: []Item{
			{Text: "Attend a four-year university with strong disability services"},
		},
		Stakeholders: []Item{
			{Text: "Dr. Linda Chen — Mother, primary advocate"},
		},
	}
}

func testSupports() []SupportEntry {
	return []SupportEntry{
		{Category: "sensory", Description: "ZoomText magnification at 3x", Status: "active",
			UDLMapping: `{"Representation": ["Perception"]}`, POURMapping: `{"Perceivable": true}`, Effectiveness: rating(4)},
		{Category: "sensory", Description: "Enlarged print materials, 18 pt minimum", Status: "active",
			Effectiveness: rating(5)},
		{Category: "motor", Description: "Alternative keyboard with large keys", Status: "paused"},
	}
}

func TestAggregateCategoryCounts(t *testing.T) {
	safe, _ := Aggregate(testProfile(), testSupports(), nil)

	if got := safe.CategoryCounts["sensory"]; got != 2 {
		t.Errorf("sensory count = %d, want 2", got)
	}
	if got := safe.CategoryCounts["motor"]; got != 1 {
		t.Errorf("motor count = %d, want 1", got)
	}
	if got := safe.Effectiveness["sensory"]; got != 4.5 {
		t.Errorf("sensory effectiveness = %v, want 4.5", got)
	}
	// Unrated categories are excluded, not averaged as zero.
	if _, ok := safe.Effectiveness["motor"]; ok {
		t.Error("motor must not appear in effectiveness summary")
	}
	if safe.ActiveSupportCount != 2 {
		t.Errorf("active count = %d, want 2", safe.ActiveSupportCount)
	}
}

func TestAggregateEffectivenessRounding(t *testing.T) {
	supports := []SupportEntry{
		{Category: "cognitive", Effectiveness: rating(4), Status: "active"},
		{Category: "cognitive", Effectiveness: rating(3), Status: "active"},
		{Category: "cognitive", Effectiveness: rating(3), Status: "active"},
	}
	safe, _ := Aggregate(Profile{}, supports, nil)
	if got := safe.Effectiveness["cognitive"]; got != 3.3 {
		t.Errorf("effectiveness = %v, want 3.3", got)
	}
}

func TestAggregateFirstName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Maya Chen", "Maya"},
		{"Maya", "Maya"},
		{"  Maya   Chen  ", "Maya"},
		{"", "Student"},
		{"   ", "Student"},
	}
	for _, tt := range tests {
		safe, _ := Aggregate(Profile{Name: tt.name}, nil, nil)
		if safe.FirstName != tt.want {
			t.Errorf("first name for %q = %q, want %q", tt.name, safe.FirstName, tt.want)
		}
		if strings.ContainsAny(safe.FirstName, " \t\n") {
			t.Errorf("first name %q contains whitespace", safe.FirstName)
		}
	}
}

func TestAggregateTagShapes(t *testing.T) {
	supports := []SupportEntry{
		{Category: "a", UDLMapping: `{"Representation": ["Perception", "Language"]}`, POURMapping: `{"Perceivable": true}`},
		{Category: "b", UDLMapping: `["Engagement"]`, POURMapping: `"Operable"`},
		{Category: "c", UDLMapping: `not json at all`, POURMapping: `{"Robust": "compatibility"}`},
	}
	safe, _ := Aggregate(Profile{}, supports, nil)

	wantUDL := []string{"Engagement", "Language", "Perception"}
	if len(safe.UDLPrinciples) != len(wantUDL) {
		t.Fatalf("UDL principles = %v, want %v", safe.UDLPrinciples, wantUDL)
	}
	for i, w := range wantUDL {
		if safe.UDLPrinciples[i] != w {
			t.Errorf("UDL[%d] = %q, want %q", i, safe.UDLPrinciples[i], w)
		}
	}
	for _, want := range []string{"Perceivable", "Operable", "Robust", "compatibility"} {
		found := false
		for _, got := range safe.POURPrinciples {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("POUR principles %v missing %q", safe.POURPrinciples, want)
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	profile, supports := testProfile(), testSupports()
	logs := []TrackingLog{
		{LoggedByRole: "teacher", ImplementationNotes: "set up", CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{LoggedByRole: "student", OutcomeNotes: "worked well", CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
	safe1, full1 := Aggregate(profile, supports, logs)
	safe2, full2 := Aggregate(profile, supports, logs)

	if full1 != full2 {
		t.Error("full context differs between identical calls")
	}
	if strings.Join(safe1.StrengthThemes, "|") != strings.Join(safe2.StrengthThemes, "|") {
		t.Error("strength themes differ between identical calls")
	}
	if strings.Join(safe1.UDLPrinciples, "|") != strings.Join(safe2.UDLPrinciples, "|") {
		t.Error("UDL principles differ between identical calls")
	}
}

// No verbatim free text from the record may survive into the safe view.
func TestSafeViewNoVerbatimLeak(t *testing.T) {
	profile := testProfile()
	supports := testSupports()
	logs := []TrackingLog{{LoggedByRole: "teacher", ImplementationNotes: "Moved Maya to the front row near the window", CreatedAt: time.Now()}}

	safe, _ := Aggregate(profile, supports, logs)

	var rendered strings.Builder
	rendered.WriteString(strings.Join(safe.SupportCategories, " "))
	rendered.WriteString(strings.Join(safe.StrengthThemes, " "))
	rendered.WriteString(strings.Join(safe.GoalThemes, " "))
	rendered.WriteString(strings.Join(safe.UDLPrinciples, " "))
	rendered.WriteString(strings.Join(safe.POURPrinciples, " "))
	out := rendered.String()

	secrets := []string{
		"ZoomText magnification at 3x",
		"Enlarged print materials",
		"Stargardt disease",
		"Linda Chen",
		"front row near the window",
		"Chen", // only the first name may survive
	}
	for _, secret := range secrets {
		if strings.Contains(out, secret) {
			t.Errorf("safe view leaks %q", secret)
		}
	}
	if safe.FirstName != "Maya" {
		t.Errorf("first name = %q, want Maya", safe.FirstName)
	}
}

func TestFullContextContent(t *testing.T) {
	profile, supports := testProfile(), testSupports()
	_, full := Aggregate(profile, supports, nil)

	if !strings.HasPrefix(full, "=== CONFIDENTIAL STUDENT CONTEXT") {
		t.Error("missing confidentiality banner")
	}
	if !strings.HasSuffix(full, "=== END CONFIDENTIAL ===") {
		t.Error("missing end banner")
	}
	for _, want := range []string{
		"Student full name: Maya Chen",
		"ZoomText magnification at 3x",
		"(effectiveness: 4/5)",
		"[sensory/general]",
		"[motor/general]",
		"Stargardt disease",
		"Dr. Linda Chen",
	} {
		if !strings.Contains(full, want) {
			t.Errorf("full context missing %q", want)
		}
	}
}

func TestFullContextRecentLogs(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var logs []TrackingLog
	for i := 0; i < 15; i++ {
		logs = append(logs, TrackingLog{
			LoggedByRole:        "teacher",
			ImplementationNotes: strings.Repeat("x", 300),
			OutcomeNotes:        "log number " + string(rune('a'+i)),
			CreatedAt:           base.Add(time.Duration(i) * time.Hour),
		})
	}
	_, full := Aggregate(Profile{Name: "A"}, nil, logs)

	if got := strings.Count(full, "impl:"); got != 10 {
		t.Errorf("rendered %d logs, want 10", got)
	}
	// Newest logs win.
	if !strings.Contains(full, "log number "+string(rune('a'+14))) {
		t.Error("newest log missing")
	}
	if strings.Contains(full, "log number a") && !strings.Contains(full, "log number "+string(rune('a'+5))) {
		t.Error("oldest logs should be dropped first")
	}
	// Notes are truncated to 200 chars.
	if strings.Contains(full, strings.Repeat("x", 201)) {
		t.Error("implementation notes not truncated")
	}
	if !strings.Contains(full, strings.Repeat("x", 200)) {
		t.Error("truncated notes missing")
	}
}

func TestAggregateMalformedInputDegrades(t *testing.T) {
	supports := []SupportEntry{
		{Category: "", Description: "", UDLMapping: "{{{", POURMapping: ""},
	}
	safe, full := Aggregate(Profile{}, supports, nil)
	if len(safe.UDLPrinciples) != 0 || len(safe.POURPrinciples) != 0 {
		t.Error("malformed tag JSON must yield empty tag sets")
	}
	if full == "" {
		t.Error("full context must still be produced")
	}
}
