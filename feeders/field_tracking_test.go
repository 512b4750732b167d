package feeders

import (
	"testing"
)

func TestDefaultFieldTracker(t *testing.T) {
	tracker := NewDefaultFieldTracker()
	if len(tracker.GetFieldPopulations()) != 0 {
		t.Fatal("Expected a new tracker to be empty")
	}

	tracker.RecordFieldPopulation(FieldPopulation{FieldPath: "ServerURL", SourceKey: "SERVER_URL", Value: "a"})
	tracker.RecordFieldPopulation(FieldPopulation{FieldPath: "ServerName", SourceKey: "SERVER_NAME", Value: "b"})
	tracker.RecordFieldPopulation(FieldPopulation{FieldPath: "ServerURL", SourceKey: "ITEST_SERVER_URL", Value: "c"})

	if got := len(tracker.GetFieldPopulations()); got != 3 {
		t.Errorf("Expected 3 populations, got %d", got)
	}

	fp, ok := tracker.PopulationFor("ServerURL")
	if !ok {
		t.Fatal("Expected a population for ServerURL")
	}
	if fp.SourceKey != "ITEST_SERVER_URL" || fp.Value != "c" {
		t.Errorf("Expected the last population to win, got %+v", fp)
	}

	if _, ok := tracker.PopulationFor("Missing"); ok {
		t.Error("Expected no population for an unknown path")
	}
}
