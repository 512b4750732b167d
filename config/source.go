// Package config describes the configuration sources a test context was loaded from.
package config

import (
	"time"
)

// Source types reported by the test context.
const (
	SourceTypeEnv        = "env"
	SourceTypeDotEnv     = "dotenv"
	SourceTypeYAML       = "yaml"
	SourceTypeTOML       = "toml"
	SourceTypeJSON       = "json"
	SourceTypeBaseConfig = "base-config"
	SourceTypeCustom     = "custom"
)

// Source represents one configuration source fed into a context.
// Sources are recorded in feed order; later sources override earlier ones.
type Source struct {
	Name       string     `json:"name"`     // e.g. "environment", "itest-config"
	Type       string     `json:"type"`     // e.g. "env", "yaml"
	Location   string     `json:"location"` // file path or directory, empty for env
	Priority   int        `json:"priority"` // feed order, higher overrides lower
	Loaded     bool       `json:"loaded"`
	LastLoaded *time.Time `json:"last_loaded,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// MarkLoaded records a successful feed at t.
func (s *Source) MarkLoaded(t time.Time) {
	s.Loaded = true
	s.LastLoaded = &t
	s.Error = ""
}

// MarkFailed records a failed feed.
func (s *Source) MarkFailed(err error) {
	s.Loaded = false
	if err != nil {
		s.Error = err.Error()
	}
}

// FieldProvenance records which source populated a configuration field.
type FieldProvenance struct {
	FieldPath    string      `json:"field_path"`
	Source       string      `json:"source"`        // e.g. "env", "dot_env_file"
	SourceDetail string      `json:"source_detail"` // e.g. "ITEST_SERVER_URL"
	Value        interface{} `json:"value"`
}
