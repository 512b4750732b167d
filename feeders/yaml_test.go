package feeders

import (
	"testing"
)

type fileTestEnvironment struct {
	ServerURL  string `yaml:"server_url" toml:"server_url" json:"server_url"`
	ServerName string `yaml:"server_name" toml:"server_name" json:"server_name"`
}

type fileTestConfig struct {
	Name        string              `yaml:"name" toml:"name" json:"name"`
	Environment fileTestEnvironment `yaml:"environment" toml:"environment" json:"environment"`
}

func TestYamlFeeder_Feed(t *testing.T) {
	path := writeTestFile(t, "config.yaml", `
name: itest
environment:
  server_url: http://localhost:8080
  server_name: local
`)

	var config fileTestConfig
	if err := NewYamlFeeder(path).Feed(&config); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if config.Name != "itest" {
		t.Errorf("Expected Name to be 'itest', got '%s'", config.Name)
	}
	if config.Environment.ServerURL != "http://localhost:8080" {
		t.Errorf("Expected ServerURL to be 'http://localhost:8080', got '%s'", config.Environment.ServerURL)
	}
}

func TestYamlFeeder_FeedKey(t *testing.T) {
	path := writeTestFile(t, "config.yaml", `
environment:
  server_url: http://localhost:8080
  server_name: local
`)
	f := NewYamlFeeder(path)

	var env fileTestEnvironment
	if err := f.FeedKey("environment", &env); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if env.ServerName != "local" {
		t.Errorf("Expected ServerName to be 'local', got '%s'", env.ServerName)
	}

	missing := fileTestEnvironment{ServerName: "untouched"}
	if err := f.FeedKey("absent", &missing); err != nil {
		t.Fatalf("Expected no error for missing key, got %v", err)
	}
	if missing.ServerName != "untouched" {
		t.Errorf("Expected missing key to leave target untouched, got '%s'", missing.ServerName)
	}
}

func TestYamlFeeder_MissingFile(t *testing.T) {
	var config fileTestConfig
	if err := NewYamlFeeder("does-not-exist.yaml").Feed(&config); err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}
