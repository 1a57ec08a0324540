// Package store persists student records in a local SQLite database. It is
// the case-management side of the house: the AI gateway never touches it
// directly, it only receives the aggregated views computed from it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	DB     *sql.DB
	DBPath string
}

// GetDefaultDbPath returns the records database path
// (~/.local/share/accesstwin/records.sqlite or ACCESSTWIN_DB).
func GetDefaultDbPath() (string, error) {
	if path := os.Getenv("ACCESSTWIN_DB"); path != "" {
		return path, nil
	}
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(dataDir, "accesstwin")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "records.sqlite"), nil
}

func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		var err error
		dbPath, err = GetDefaultDbPath()
		if err != nil {
			return nil, err
		}
	}

	// Enable WAL mode via DSN
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Store{DB: db, DBPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		strengths_json TEXT NOT NULL DEFAULT '[]',
		history_json TEXT NOT NULL DEFAULT '[]',
		hopes_json TEXT NOT NULL DEFAULT '[]',
		stakeholders_json TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS supports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		category TEXT NOT NULL,
		subcategory TEXT,
		description TEXT NOT NULL,
		udl_json TEXT NOT NULL DEFAULT '{}',
		pour_json TEXT NOT NULL DEFAULT '{}',
		status TEXT NOT NULL DEFAULT 'active',
		effectiveness REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_supports_profile ON supports(profile_id);

	CREATE TABLE IF NOT EXISTS tracking_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		support_id INTEGER REFERENCES supports(id) ON DELETE SET NULL,
		logged_by_role TEXT NOT NULL,
		implementation_notes TEXT,
		outcome_notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_logs_profile ON tracking_logs(profile_id);
	`
	_, err := s.DB.Exec(schema)
	return err
}

// Status holds record counts for the status command.
type Status struct {
	DBPath       string
	ProfileCount int
	SupportCount int
	LogCount     int
}

func (s *Store) GetStatus() (*Status, error) {
	st := &Status{DBPath: s.DBPath}
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&st.ProfileCount); err != nil {
		return nil, err
	}
	_ = s.DB.QueryRow(`SELECT COUNT(*) FROM supports`).Scan(&st.SupportCount)
	_ = s.DB.QueryRow(`SELECT COUNT(*) FROM tracking_logs`).Scan(&st.LogCount)
	return st, nil
}
