package store

import (
	"database/sql"

	"github.com/accesstwin/accesstwin-go/internal/privacy"
)

// AddTrackingLog records one implementation/outcome log. supportID may be
// zero for logs not tied to a specific support.
func (s *Store) AddTrackingLog(profileID int64, supportID int64, log privacy.TrackingLog) (int64, error) {
	var sid any
	if supportID > 0 {
		sid = supportID
	}
	res, err := s.DB.Exec(`
		INSERT INTO tracking_logs (profile_id, support_id, logged_by_role, implementation_notes, outcome_notes)
		VALUES (?, ?, ?, ?, ?)`,
		profileID, sid, log.LoggedByRole, log.ImplementationNotes, log.OutcomeNotes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListTrackingLogs returns logs for a profile, newest first.
func (s *Store) ListTrackingLogs(profileID int64, limit int) ([]privacy.TrackingLog, error) {
	q := `
		SELECT logged_by_role, implementation_notes, outcome_notes, created_at
		FROM tracking_logs WHERE profile_id = ? ORDER BY created_at DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.DB.Query(q+` LIMIT ?`, profileID, limit)
	} else {
		rows, err = s.DB.Query(q, profileID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []privacy.TrackingLog
	for rows.Next() {
		var l privacy.TrackingLog
		var impl, outcome sql.NullString
		if err := rows.Scan(&l.LoggedByRole, &impl, &outcome, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.ImplementationNotes = impl.String
		l.OutcomeNotes = outcome.String
		out = append(out, l)
	}
	return out, rows.Err()
}
