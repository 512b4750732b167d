package feeders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestDotEnvFeeder(t *testing.T) {
	path := writeTestFile(t, ".env", `
# integration test server
SERVER_URL="http://localhost:8080"
export SERVER_NAME='local'
PORT=8080
`)

	t.Run("read from .env file", func(t *testing.T) {
		var config affixedTestConfig
		f := NewDotEnvFeeder(path)
		if err := f.Feed(&config); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.ServerURL != "http://localhost:8080" {
			t.Errorf("Expected ServerURL to be 'http://localhost:8080', got '%s'", config.ServerURL)
		}
		if config.ServerName != "local" {
			t.Errorf("Expected ServerName to be 'local', got '%s'", config.ServerName)
		}
		if config.Port != 8080 {
			t.Errorf("Expected Port to be 8080, got %d", config.Port)
		}
		if v, ok := f.Get("PORT"); !ok || v != "8080" {
			t.Errorf("Expected parsed PORT=8080, got %q", v)
		}
	})

	t.Run("process environment wins", func(t *testing.T) {
		t.Setenv("SERVER_NAME", "from-env")

		tracker := NewDefaultFieldTracker()
		f := NewDotEnvFeeder(path)
		f.SetFieldTracker(tracker)

		var config affixedTestConfig
		if err := f.Feed(&config); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.ServerName != "from-env" {
			t.Errorf("Expected ServerName to be 'from-env', got '%s'", config.ServerName)
		}

		fp, ok := tracker.PopulationFor("ServerName")
		if !ok || fp.SourceType != "env" {
			t.Errorf("Expected ServerName tracked from env, got %+v", fp)
		}
		fp, ok = tracker.PopulationFor("ServerURL")
		if !ok || fp.SourceType != "dot_env_file" {
			t.Errorf("Expected ServerURL tracked from dot_env_file, got %+v", fp)
		}
	})

	t.Run("non-existent .env file", func(t *testing.T) {
		var config affixedTestConfig
		err := NewDotEnvFeeder(filepath.Join(t.TempDir(), "missing.env")).Feed(&config)
		if err == nil {
			t.Fatal("Expected error for non-existent file, got nil")
		}
	})

	t.Run("invalid line", func(t *testing.T) {
		bad := writeTestFile(t, "bad.env", "SERVER_URL\n")
		var config affixedTestConfig
		err := NewDotEnvFeeder(bad).Feed(&config)
		if !errors.Is(err, ErrDotEnvInvalidLineFormat) {
			t.Errorf("Expected ErrDotEnvInvalidLineFormat, got %v", err)
		}
	})

	t.Run("invalid structure", func(t *testing.T) {
		err := NewDotEnvFeeder(path).Feed("not a struct")
		if !errors.Is(err, ErrDotEnvInvalidStructureType) {
			t.Errorf("Expected ErrDotEnvInvalidStructureType, got %v", err)
		}
	})
}
