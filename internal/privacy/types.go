package privacy

import "time"

// Item is one free-text entry on a profile list (strengths, history, hopes,
// stakeholders), with an optional priority label.
type Item struct {
	Text     string `json:"text"`
	Priority string `json:"priority,omitempty"`
}

// Profile is the raw student record. It is caller-owned and read-only here.
type Profile struct {
	Name         string
	Strengths    []Item
	History      []Item
	Hopes        []Item
	Stakeholders []Item
}

// SupportEntry is one accommodation on a profile. UDLMapping and POURMapping
// hold raw JSON whose shape is not trusted: an object, a flat list, or a bare
// string are all accepted.
type SupportEntry struct {
	Category      string
	Subcategory   string
	Description   string
	UDLMapping    string
	POURMapping   string
	Status        string
	Effectiveness *float64
}

// TrackingLog is one implementation/outcome log entry.
type TrackingLog struct {
	LoggedByRole        string
	ImplementationNotes string
	OutcomeNotes        string
	CreatedAt           time.Time
}

// SafeView is the coarse summary safe for the teacher-facing surface. Every
// field is a count, a controlled-vocabulary tag, a rounded aggregate, or a
// generalised theme, never verbatim free text. The only identity carried is
// the first name.
type SafeView struct {
	FirstName          string             `json:"first_name"`
	SupportCategories  []string           `json:"support_categories"`
	CategoryCounts     map[string]int     `json:"support_category_counts"`
	StrengthThemes     []string           `json:"strength_themes"`
	GoalThemes         []string           `json:"goal_themes"`
	ActiveSupportCount int                `json:"active_support_count"`
	UDLPrinciples      []string           `json:"udl_principles"`
	POURPrinciples     []string           `json:"pour_principles"`
	Effectiveness      map[string]float64 `json:"effectiveness_summary"`
}
