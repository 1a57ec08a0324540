package store

import (
	"database/sql"

	"github.com/accesstwin/accesstwin-go/internal/privacy"
)

// SupportRow is a stored support entry with its ids.
type SupportRow struct {
	ID        int64
	ProfileID int64
	Entry     privacy.SupportEntry
}

func (s *Store) AddSupport(profileID int64, e privacy.SupportEntry) (int64, error) {
	udl := e.UDLMapping
	if udl == "" {
		udl = "{}"
	}
	pour := e.POURMapping
	if pour == "" {
		pour = "{}"
	}
	status := e.Status
	if status == "" {
		status = "active"
	}
	res, err := s.DB.Exec(`
		INSERT INTO supports (profile_id, category, subcategory, description, udl_json, pour_json, status, effectiveness)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profileID, e.Category, e.Subcategory, e.Description, udl, pour, status, e.Effectiveness)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSupports returns all supports for a profile in insertion order.
func (s *Store) ListSupports(profileID int64) ([]SupportRow, error) {
	rows, err := s.DB.Query(`
		SELECT id, profile_id, category, subcategory, description, udl_json, pour_json, status, effectiveness
		FROM supports WHERE profile_id = ? ORDER BY id`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SupportRow
	for rows.Next() {
		var r SupportRow
		var sub sql.NullString
		var eff sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.ProfileID, &r.Entry.Category, &sub, &r.Entry.Description,
			&r.Entry.UDLMapping, &r.Entry.POURMapping, &r.Entry.Status, &eff); err != nil {
			return nil, err
		}
		r.Entry.Subcategory = sub.String
		if eff.Valid {
			v := eff.Float64
			r.Entry.Effectiveness = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetSupportStatus moves a support through its lifecycle
// (active/paused/completed/archived).
func (s *Store) SetSupportStatus(id int64, status string) error {
	_, err := s.DB.Exec(`UPDATE supports SET status = ? WHERE id = ?`, status, id)
	return err
}

// RateSupport records an effectiveness rating (1-5).
func (s *Store) RateSupport(id int64, rating float64) error {
	_, err := s.DB.Exec(`UPDATE supports SET effectiveness = ? WHERE id = ?`, rating, id)
	return err
}

// Entries extracts the bare support entries from rows.
func Entries(rows []SupportRow) []privacy.SupportEntry {
	out := make([]privacy.SupportEntry, len(rows))
	for i, r := range rows {
		out[i] = r.Entry
	}
	return out
}
