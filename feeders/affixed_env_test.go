package feeders

import (
	"errors"
	"testing"
)

type affixedTestConfig struct {
	ServerURL  string `env:"SERVER_URL"`
	ServerName string `env:"SERVER_NAME"`
	Port       int    `env:"PORT"`
	Nested     struct {
		Secure bool `env:"SECURE"`
	}
	Untagged string
}

func TestAffixedEnvFeeder(t *testing.T) {
	t.Run("with prefix and suffix", func(t *testing.T) {
		t.Setenv("ITEST_SERVER_URL_V2", "http://localhost:8080")
		t.Setenv("ITEST_PORT_V2", "8080")
		t.Setenv("ITEST_SECURE_V2", "true")

		var config affixedTestConfig
		err := NewAffixedEnvFeeder("ITEST", "V2").Feed(&config)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.ServerURL != "http://localhost:8080" {
			t.Errorf("Expected ServerURL to be 'http://localhost:8080', got '%s'", config.ServerURL)
		}
		if config.Port != 8080 {
			t.Errorf("Expected Port to be 8080, got %d", config.Port)
		}
		if !config.Nested.Secure {
			t.Errorf("Expected Nested.Secure to be true")
		}
	})

	t.Run("with prefix only and trailing underscore", func(t *testing.T) {
		t.Setenv("ITEST_SERVER_NAME", "itest")

		var config affixedTestConfig
		if err := NewAffixedEnvFeeder("itest_", "").Feed(&config); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.ServerName != "itest" {
			t.Errorf("Expected ServerName to be 'itest', got '%s'", config.ServerName)
		}
	})

	t.Run("unset variables leave fields untouched", func(t *testing.T) {
		config := affixedTestConfig{ServerName: "preset"}
		if err := NewAffixedEnvFeeder("NOPE", "").Feed(&config); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.ServerName != "preset" {
			t.Errorf("Expected ServerName to stay 'preset', got '%s'", config.ServerName)
		}
	})

	t.Run("empty prefix and suffix", func(t *testing.T) {
		var config affixedTestConfig
		err := NewAffixedEnvFeeder("", "").Feed(&config)
		if !errors.Is(err, ErrEnvEmptyPrefixAndSuffix) {
			t.Errorf("Expected ErrEnvEmptyPrefixAndSuffix, got %v", err)
		}
	})

	t.Run("invalid structure", func(t *testing.T) {
		var config affixedTestConfig
		for _, target := range []interface{}{nil, config, new(string), (*affixedTestConfig)(nil)} {
			if err := NewAffixedEnvFeeder("ITEST", "").Feed(target); !errors.Is(err, ErrEnvInvalidStructure) {
				t.Errorf("Expected ErrEnvInvalidStructure for %T, got %v", target, err)
			}
		}
	})

	t.Run("conversion error names the field", func(t *testing.T) {
		t.Setenv("BAD_PORT", "not-a-number")

		var config affixedTestConfig
		err := NewAffixedEnvFeeder("BAD", "").Feed(&config)
		if err == nil {
			t.Fatal("Expected conversion error, got nil")
		}
	})
}

func TestAffixedEnvFeeder_FieldTracking(t *testing.T) {
	t.Setenv("TRACK_SERVER_NAME", "tracked")
	t.Setenv("TRACK_SECURE", "true")

	tracker := NewDefaultFieldTracker()
	f := NewAffixedEnvFeeder("TRACK", "")
	f.SetFieldTracker(tracker)

	var config affixedTestConfig
	if err := f.Feed(&config); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	pops := tracker.GetFieldPopulations()
	if len(pops) != 2 {
		t.Fatalf("Expected 2 field populations, got %d", len(pops))
	}

	fp, ok := tracker.PopulationFor("Nested.Secure")
	if !ok {
		t.Fatal("Expected population for Nested.Secure")
	}
	if fp.SourceKey != "TRACK_SECURE" || fp.FeederType != "AffixedEnvFeeder" || fp.SourceType != "env" {
		t.Errorf("Unexpected population %+v", fp)
	}
	if fp.Value != true {
		t.Errorf("Expected tracked value true, got %v", fp.Value)
	}
}

type debugRecorder struct {
	messages []string
}

func (d *debugRecorder) Debug(msg string, _ ...any) {
	d.messages = append(d.messages, msg)
}

func TestAffixedEnvFeeder_VerboseDebug(t *testing.T) {
	t.Setenv("VERBOSE_SERVER_NAME", "v")

	rec := &debugRecorder{}
	f := NewAffixedEnvFeeder("VERBOSE", "")
	f.SetVerboseDebug(true, rec)

	var config affixedTestConfig
	if err := f.Feed(&config); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rec.messages) < 3 {
		t.Errorf("Expected verbose debug output, got %v", rec.messages)
	}
}
