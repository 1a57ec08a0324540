package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/accesstwin/accesstwin-go/internal/privacy"
)

// ProfileRow is a stored profile with its database id.
type ProfileRow struct {
	ID      int64
	Profile privacy.Profile
}

// CreateProfile inserts a profile and returns its id. Item lists are stored
// as JSON columns.
func (s *Store) CreateProfile(p privacy.Profile) (int64, error) {
	strengths, err := marshalItems(p.Strengths)
	if err != nil {
		return 0, err
	}
	history, err := marshalItems(p.History)
	if err != nil {
		return 0, err
	}
	hopes, err := marshalItems(p.Hopes)
	if err != nil {
		return 0, err
	}
	stakeholders, err := marshalItems(p.Stakeholders)
	if err != nil {
		return 0, err
	}
	res, err := s.DB.Exec(`
		INSERT INTO profiles (name, strengths_json, history_json, hopes_json, stakeholders_json)
		VALUES (?, ?, ?, ?, ?)`,
		p.Name, strengths, history, hopes, stakeholders)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetProfile loads one profile by id.
func (s *Store) GetProfile(id int64) (*ProfileRow, error) {
	row := s.DB.QueryRow(`
		SELECT id, name, strengths_json, history_json, hopes_json, stakeholders_json
		FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// ListProfiles returns all profiles ordered by name.
func (s *Store) ListProfiles() ([]ProfileRow, error) {
	rows, err := s.DB.Query(`
		SELECT id, name, strengths_json, history_json, hopes_json, stakeholders_json
		FROM profiles ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProfileRow
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// UpdateProfile rewrites all profile fields.
func (s *Store) UpdateProfile(id int64, p privacy.Profile) error {
	strengths, err := marshalItems(p.Strengths)
	if err != nil {
		return err
	}
	history, err := marshalItems(p.History)
	if err != nil {
		return err
	}
	hopes, err := marshalItems(p.Hopes)
	if err != nil {
		return err
	}
	stakeholders, err := marshalItems(p.Stakeholders)
	if err != nil {
		return err
	}
	res, err := s.DB.Exec(`
		UPDATE profiles
		SET name = ?, strengths_json = ?, history_json = ?, hopes_json = ?, stakeholders_json = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Name, strengths, history, hopes, stakeholders, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("profile %d not found", id)
	}
	return nil
}

// DeleteProfile removes a profile and, via cascade, its supports and logs.
func (s *Store) DeleteProfile(id int64) error {
	_, err := s.DB.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*ProfileRow, error) {
	var pr ProfileRow
	var strengths, history, hopes, stakeholders string
	if err := row.Scan(&pr.ID, &pr.Profile.Name, &strengths, &history, &hopes, &stakeholders); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, err
	}
	pr.Profile.Strengths = unmarshalItems(strengths)
	pr.Profile.History = unmarshalItems(history)
	pr.Profile.Hopes = unmarshalItems(hopes)
	pr.Profile.Stakeholders = unmarshalItems(stakeholders)
	return &pr, nil
}

func marshalItems(items []privacy.Item) (string, error) {
	if items == nil {
		items = []privacy.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalItems tolerates both the item-object shape and plain strings,
// matching what older exports contain. Bad JSON yields an empty list.
func unmarshalItems(raw string) []privacy.Item {
	var items []privacy.Item
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items
	}
	var plain []string
	if err := json.Unmarshal([]byte(raw), &plain); err == nil {
		items = make([]privacy.Item, 0, len(plain))
		for _, t := range plain {
			items = append(items, privacy.Item{Text: t})
		}
		return items
	}
	return nil
}
