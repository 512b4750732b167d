package feeders

import (
	"reflect"
)

// AffixedEnvFeeder reads environment variables named PREFIX_<env tag>_SUFFIX.
// It lets several deployments share one process environment, e.g. ITEST_SERVER_URL
// next to STAGING_SERVER_URL.
type AffixedEnvFeeder struct {
	Prefix       string
	Suffix       string
	verboseDebug bool
	logger       interface{ Debug(msg string, args ...any) }
	fieldTracker FieldTracker
}

// NewAffixedEnvFeeder creates a new AffixedEnvFeeder with the specified prefix and suffix
func NewAffixedEnvFeeder(prefix, suffix string) *AffixedEnvFeeder {
	return &AffixedEnvFeeder{Prefix: prefix, Suffix: suffix}
}

// SetVerboseDebug enables or disables verbose debug logging
func (f *AffixedEnvFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	f.verboseDebug = enabled
	f.logger = logger
	if enabled && logger != nil {
		f.logger.Debug("Verbose affixed env feeder debugging enabled", "prefix", f.Prefix, "suffix", f.Suffix)
	}
}

// SetFieldTracker sets the field tracker for recording field populations
func (f *AffixedEnvFeeder) SetFieldTracker(tracker FieldTracker) {
	f.fieldTracker = tracker
}

// Feed reads environment variables and populates the provided structure
func (f *AffixedEnvFeeder) Feed(structure interface{}) error {
	rv, err := structValue(structure)
	if err != nil {
		return err
	}
	if f.Prefix == "" && f.Suffix == "" {
		return ErrEnvEmptyPrefixAndSuffix
	}

	f.debug("AffixedEnvFeeder: Starting feed process", "structureType", reflect.TypeOf(structure))

	return walkEnvFields(rv, "", func(field reflect.Value, sf reflect.StructField, fieldPath, envTag string) error {
		name := envName(f.Prefix, envTag, f.Suffix)
		value, ok := lookupEnv(name)
		if !ok {
			f.debug("AffixedEnvFeeder: Environment variable not found or empty", "fieldPath", fieldPath, "envName", name)
			return nil
		}

		converted, err := setFieldValue(field, value)
		if err != nil {
			return err
		}
		f.debug("AffixedEnvFeeder: Set field", "fieldPath", fieldPath, "envName", name)

		if f.fieldTracker != nil {
			f.fieldTracker.RecordFieldPopulation(FieldPopulation{
				FieldPath:  fieldPath,
				FieldName:  sf.Name,
				FieldType:  field.Type().String(),
				FeederType: "AffixedEnvFeeder",
				SourceType: "env",
				SourceKey:  name,
				Value:      converted,
			})
		}
		return nil
	})
}

func (f *AffixedEnvFeeder) debug(msg string, args ...any) {
	if f.verboseDebug && f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
