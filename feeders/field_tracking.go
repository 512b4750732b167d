package feeders

// FieldPopulation represents a single field population event
type FieldPopulation struct {
	FieldPath  string      // Full path to the field (e.g., "Environment.ServerURL")
	FieldName  string      // Name of the field
	FieldType  string      // Type of the field
	FeederType string      // Type of feeder that populated it
	SourceType string      // Type of source (env, dot_env_file, ...)
	SourceKey  string      // Source key that was used (e.g., "ITEST_SERVER_URL")
	Value      interface{} // Value that was set
}

// FieldTracker interface allows feeders to report which fields they populate
type FieldTracker interface {
	RecordFieldPopulation(fp FieldPopulation)
}

// DefaultFieldTracker is a basic implementation of FieldTracker
type DefaultFieldTracker struct {
	populations []FieldPopulation
}

// NewDefaultFieldTracker creates a new DefaultFieldTracker
func NewDefaultFieldTracker() *DefaultFieldTracker {
	return &DefaultFieldTracker{
		populations: make([]FieldPopulation, 0),
	}
}

// RecordFieldPopulation records that a field was populated by a feeder
func (t *DefaultFieldTracker) RecordFieldPopulation(fp FieldPopulation) {
	t.populations = append(t.populations, fp)
}

// GetFieldPopulations returns all recorded field populations
func (t *DefaultFieldTracker) GetFieldPopulations() []FieldPopulation {
	return t.populations
}

// PopulationFor returns the last recorded population for the given field path.
func (t *DefaultFieldTracker) PopulationFor(fieldPath string) (FieldPopulation, bool) {
	for i := len(t.populations) - 1; i >= 0; i-- {
		if t.populations[i].FieldPath == fieldPath {
			return t.populations[i], true
		}
	}
	return FieldPopulation{}, false
}
