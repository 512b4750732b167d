// Package feeders provides configuration feeders that populate configuration structs
// from environment variables, .env files and YAML, TOML or JSON documents.
package feeders

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/golobby/cast"
)

// EnvFeeder reads environment variables named by `env` tags. Names are
// upper-cased; unset and empty variables leave the field untouched.
type EnvFeeder struct {
	verboseDebug bool
	logger       interface{ Debug(msg string, args ...any) }
	fieldTracker FieldTracker
}

// NewEnvFeeder creates a new EnvFeeder that reads from environment variables
func NewEnvFeeder() *EnvFeeder {
	return &EnvFeeder{}
}

// SetVerboseDebug enables or disables verbose debug logging
func (f *EnvFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	f.verboseDebug = enabled
	f.logger = logger
	if enabled && logger != nil {
		f.logger.Debug("Verbose env feeder debugging enabled")
	}
}

// SetFieldTracker sets the field tracker for recording field populations
func (f *EnvFeeder) SetFieldTracker(tracker FieldTracker) {
	f.fieldTracker = tracker
}

// Feed reads environment variables and populates the provided structure
func (f *EnvFeeder) Feed(structure interface{}) error {
	rv, err := structValue(structure)
	if err != nil {
		return err
	}

	f.debug("EnvFeeder: Starting feed process", "structureType", reflect.TypeOf(structure))

	return walkEnvFields(rv, "", func(field reflect.Value, sf reflect.StructField, fieldPath, envTag string) error {
		name := envName("", envTag, "")
		value, ok := lookupEnv(name)
		if !ok {
			f.debug("EnvFeeder: Environment variable not found or empty", "fieldPath", fieldPath, "envName", name)
			return nil
		}

		converted, err := setFieldValue(field, value)
		if err != nil {
			return err
		}
		f.debug("EnvFeeder: Set field", "fieldPath", fieldPath, "envName", name)

		if f.fieldTracker != nil {
			f.fieldTracker.RecordFieldPopulation(FieldPopulation{
				FieldPath:  fieldPath,
				FieldName:  sf.Name,
				FieldType:  field.Type().String(),
				FeederType: "EnvFeeder",
				SourceType: "env",
				SourceKey:  name,
				Value:      converted,
			})
		}
		return nil
	})
}

func (f *EnvFeeder) debug(msg string, args ...any) {
	if f.verboseDebug && f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}

// envFieldVisitor is called for every settable field carrying a non-empty env tag.
type envFieldVisitor func(field reflect.Value, sf reflect.StructField, fieldPath, envTag string) error

// structValue returns the struct a feeder should populate, or ErrEnvInvalidStructure.
func structValue(structure interface{}) (reflect.Value, error) {
	inputType := reflect.TypeOf(structure)
	if inputType == nil || inputType.Kind() != reflect.Ptr || inputType.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, ErrEnvInvalidStructure
	}
	rv := reflect.ValueOf(structure)
	if rv.IsNil() {
		return reflect.Value{}, ErrEnvInvalidStructure
	}
	return rv.Elem(), nil
}

// walkEnvFields visits env-tagged fields, descending into nested structs and
// non-nil struct pointers.
func walkEnvFields(rv reflect.Value, path string, visit envFieldVisitor) error {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		sf := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		fieldPath := sf.Name
		if path != "" {
			fieldPath = path + "." + sf.Name
		}

		switch field.Kind() {
		case reflect.Struct:
			if err := walkEnvFields(field, fieldPath, visit); err != nil {
				return err
			}
			continue
		case reflect.Pointer:
			if !field.IsNil() && field.Elem().Kind() == reflect.Struct {
				if err := walkEnvFields(field.Elem(), fieldPath, visit); err != nil {
					return err
				}
				continue
			}
		}

		envTag, ok := sf.Tag.Lookup("env")
		if !ok || envTag == "" || envTag == "-" {
			continue
		}
		if err := visit(field, sf, fieldPath, envTag); err != nil {
			return fmt.Errorf("error in field '%s': %w", sf.Name, err)
		}
	}
	return nil
}

// setFieldValue converts a raw string to the field's type and assigns it.
func setFieldValue(field reflect.Value, strValue string) (interface{}, error) {
	if !field.CanSet() {
		return nil, ErrEnvFieldCannotBeSet
	}

	convertedValue, err := cast.FromType(strValue, field.Type())
	if err != nil {
		return nil, fmt.Errorf("cannot convert value to type %v: %w", field.Type(), err)
	}

	field.Set(reflect.ValueOf(convertedValue).Convert(field.Type()))
	return convertedValue, nil
}

// envName builds PREFIX_NAME_SUFFIX from the affixes and the tag.
func envName(prefix, tag, suffix string) string {
	name := strings.ToUpper(tag)
	if prefix = strings.Trim(strings.ToUpper(prefix), "_"); prefix != "" {
		name = prefix + "_" + name
	}
	if suffix = strings.Trim(strings.ToUpper(suffix), "_"); suffix != "" {
		name = name + "_" + suffix
	}
	return name
}

// lookupEnv reports a variable only when it is set to a non-empty value.
func lookupEnv(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	return value, ok && value != ""
}
