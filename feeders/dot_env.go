package feeders

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strings"
)

// DotEnvFeeder reads a .env file and populates env-tagged fields from it.
// Variables present in the process environment take precedence over the file.
type DotEnvFeeder struct {
	Path         string
	verboseDebug bool
	logger       interface{ Debug(msg string, args ...any) }
	fieldTracker FieldTracker
	envVars      map[string]string
}

// NewDotEnvFeeder creates a new DotEnvFeeder that reads from the specified .env file
func NewDotEnvFeeder(filePath string) *DotEnvFeeder {
	return &DotEnvFeeder{
		Path:    filePath,
		envVars: make(map[string]string),
	}
}

// SetVerboseDebug enables or disables verbose debug logging
func (f *DotEnvFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	f.verboseDebug = enabled
	f.logger = logger
	if enabled && logger != nil {
		f.logger.Debug("Verbose dot env feeder debugging enabled", "filePath", f.Path)
	}
}

// SetFieldTracker sets the field tracker for recording field populations
func (f *DotEnvFeeder) SetFieldTracker(tracker FieldTracker) {
	f.fieldTracker = tracker
}

// Feed reads the .env file and populates the provided structure directly
func (f *DotEnvFeeder) Feed(structure interface{}) error {
	rv, err := structValue(structure)
	if err != nil {
		return wrapDotEnvStructureError(structure)
	}

	vars, err := parseDotEnvFile(f.Path)
	if err != nil {
		f.debug("DotEnvFeeder: Failed to parse .env file", "filePath", f.Path, "error", err)
		return fmt.Errorf("failed to parse .env file: %w", err)
	}
	f.envVars = vars
	f.debug("DotEnvFeeder: Parsed .env file", "filePath", f.Path, "varsFound", len(vars))

	return walkEnvFields(rv, "", func(field reflect.Value, sf reflect.StructField, fieldPath, envTag string) error {
		value, sourceType, ok := f.lookup(envTag)
		if !ok {
			f.debug("DotEnvFeeder: Variable not found", "envKey", envTag, "fieldPath", fieldPath)
			return nil
		}

		converted, err := setFieldValue(field, value)
		if err != nil {
			return fmt.Errorf("failed to convert value for field %s: %w", fieldPath, err)
		}
		f.debug("DotEnvFeeder: Set field", "fieldPath", fieldPath, "envKey", envTag, "source", sourceType)

		if f.fieldTracker != nil {
			f.fieldTracker.RecordFieldPopulation(FieldPopulation{
				FieldPath:  fieldPath,
				FieldName:  sf.Name,
				FieldType:  field.Type().String(),
				FeederType: "DotEnvFeeder",
				SourceType: sourceType,
				SourceKey:  envTag,
				Value:      converted,
			})
		}
		return nil
	})
}

// Get returns a value parsed from the .env file by the last Feed call.
func (f *DotEnvFeeder) Get(key string) (string, bool) {
	value, ok := f.envVars[key]
	return value, ok
}

func (f *DotEnvFeeder) lookup(key string) (value, sourceType string, ok bool) {
	if value, ok := lookupEnv(key); ok {
		return value, "env", true
	}
	if value, ok := f.envVars[key]; ok && value != "" {
		return value, "dot_env_file", true
	}
	return "", "", false
}

func (f *DotEnvFeeder) debug(msg string, args ...any) {
	if f.verboseDebug && f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}

// parseDotEnvFile parses a .env file and returns the key-value pairs
func parseDotEnvFile(filename string) (map[string]string, error) {
	result := make(map[string]string)

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		idx := strings.Index(line, "=")
		if idx <= 0 {
			return nil, wrapDotEnvLineError(lineNum, line)
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		result[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	return result, nil
}
