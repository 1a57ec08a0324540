package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ACCESSTWIN_CONFIG_DIR", dir)
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	useTempConfigDir(t)
	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind != "local" || s.Provider != "ollama" {
		t.Errorf("defaults = %+v", s)
	}
	if s.BaseURL != "http://localhost:11434" {
		t.Errorf("default base url = %q", s.BaseURL)
	}
	if s.ConsentInstitutional || s.ConsentData {
		t.Error("consent must default to false")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	useTempConfigDir(t)
	in := &Settings{
		Kind:                 "cloud",
		Provider:             "anthropic",
		Model:                "claude-sonnet-4-5",
		APIKey:               "sk-ant-test",
		ConsentInstitutional: true,
		ConsentData:          true,
	}
	if err := Save(in); err != nil {
		t.Fatal(err)
	}
	out, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if *out != *in {
		t.Errorf("round trip: got %+v, want %+v", out, in)
	}
}

func TestSaveFileMode(t *testing.T) {
	dir := useTempConfigDir(t)
	if err := Save(Default()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(filepath.Join(dir, "settings.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("settings file mode = %o, want 0600", got)
	}
}

func TestSaveOmitsEmptyKey(t *testing.T) {
	dir := useTempConfigDir(t)
	if err := Save(Default()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "settings.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "api_key") {
		t.Error("empty api key must not be written")
	}
}

func TestClear(t *testing.T) {
	dir := useTempConfigDir(t)
	if err := Save(Default()); err != nil {
		t.Fatal(err)
	}
	if err := Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "settings.yml")); !os.IsNotExist(err) {
		t.Error("settings file still present after clear")
	}
	// Clearing twice is fine.
	if err := Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}
