package feeders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// BaseConfigFeeder loads <BaseDir>/base/default.* and overlays
// <BaseDir>/environments/<Environment>/overrides.* on top of it.
// Nested maps are merged; any other override value replaces the base value.
type BaseConfigFeeder struct {
	BaseDir      string
	Environment  string
	verboseDebug bool
	logger       interface{ Debug(msg string, args ...any) }
	fieldTracker FieldTracker
}

// layeredConfig is the merged document plus what the override file contributed.
type layeredConfig struct {
	merged       map[string]interface{}
	override     map[string]interface{}
	basePath     string
	overridePath string
}

// NewBaseConfigFeeder creates a new base configuration feeder
func NewBaseConfigFeeder(baseDir, environment string) *BaseConfigFeeder {
	return &BaseConfigFeeder{
		BaseDir:     baseDir,
		Environment: environment,
	}
}

// SetVerboseDebug enables or disables verbose debug logging
func (b *BaseConfigFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	b.verboseDebug = enabled
	b.logger = logger
	if enabled && logger != nil {
		b.logger.Debug("Verbose BaseConfig feeder debugging enabled", "baseDir", b.BaseDir, "environment", b.Environment)
	}
}

// SetFieldTracker sets the field tracker for recording field populations
func (b *BaseConfigFeeder) SetFieldTracker(tracker FieldTracker) {
	b.fieldTracker = tracker
}

// Feed loads and merges base configuration with environment-specific overrides
func (b *BaseConfigFeeder) Feed(structure interface{}) error {
	layers, err := b.load()
	if err != nil {
		return err
	}

	if err := b.apply(layers.merged, structure); err != nil {
		return fmt.Errorf("failed to apply merged config: %w", err)
	}
	b.track(structure, layers.merged, layers.override, layers)

	b.debug("BaseConfigFeeder: Feed completed successfully", "structureType", reflect.TypeOf(structure))
	return nil
}

// FeedKey feeds one top-level section of the merged configuration into target.
// A missing section leaves target untouched.
func (b *BaseConfigFeeder) FeedKey(key string, target interface{}) error {
	layers, err := b.load()
	if err != nil {
		return err
	}

	section, ok := layers.merged[key]
	if !ok {
		b.debug("BaseConfigFeeder: Section not present", "key", key)
		return nil
	}
	sectionMap, ok := section.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: section %s is %T", ErrBaseConfigUnsupportedFormat, key, section)
	}

	if err := b.apply(sectionMap, target); err != nil {
		return fmt.Errorf("failed to apply merged config for key %s: %w", key, err)
	}
	overrideSection, _ := layers.override[key].(map[string]interface{})
	b.track(target, sectionMap, overrideSection, layers)
	return nil
}

// Files returns the base and override files that would be loaded, if present.
func (b *BaseConfigFeeder) Files() (base, override string) {
	return findConfigFile(filepath.Join(b.BaseDir, "base"), "default"),
		findConfigFile(filepath.Join(b.BaseDir, "environments", b.Environment), "overrides")
}

func (b *BaseConfigFeeder) load() (*layeredConfig, error) {
	basePath, overridePath := b.Files()
	b.debug("BaseConfigFeeder: Resolved config files", "base", basePath, "override", overridePath)

	base, err := loadConfigFile(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load base config: %w", err)
	}
	override, err := loadConfigFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	return &layeredConfig{
		merged:       mergeConfigs(base, override),
		override:     override,
		basePath:     basePath,
		overridePath: overridePath,
	}, nil
}

// track records a population for every leaf field of target that the merged
// document set. Leaves present in the override map are attributed to the
// override file, everything else to the base file.
func (b *BaseConfigFeeder) track(target interface{}, merged, override map[string]interface{}, layers *layeredConfig) {
	if b.fieldTracker == nil {
		return
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return
	}
	b.trackFields(rv.Elem(), "", merged, override, layers)
}

func (b *BaseConfigFeeder) trackFields(rv reflect.Value, path string, merged, override map[string]interface{}, layers *layeredConfig) {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := yamlKey(sf)
		if key == "" {
			continue
		}
		value, ok := merged[key]
		if !ok {
			continue
		}

		fieldPath := sf.Name
		if path != "" {
			fieldPath = path + "." + sf.Name
		}
		field := rv.Field(i)
		overrideValue, fromOverride := override[key]

		if sub, isMap := value.(map[string]interface{}); isMap {
			nested := field
			if nested.Kind() == reflect.Ptr && !nested.IsNil() {
				nested = nested.Elem()
			}
			if nested.Kind() == reflect.Struct {
				overrideSub, _ := overrideValue.(map[string]interface{})
				b.trackFields(nested, fieldPath, sub, overrideSub, layers)
				continue
			}
		}

		source := layers.basePath
		if fromOverride {
			source = layers.overridePath
		}
		b.fieldTracker.RecordFieldPopulation(FieldPopulation{
			FieldPath:  fieldPath,
			FieldName:  sf.Name,
			FieldType:  field.Type().String(),
			FeederType: "BaseConfigFeeder",
			SourceType: fileFormat(source),
			SourceKey:  source,
			Value:      field.Interface(),
		})
		b.debug("BaseConfigFeeder: Tracked field", "fieldPath", fieldPath, "source", source)
	}
}

// yamlKey returns the document key yaml.v3 maps the field to, or "" when skipped.
func yamlKey(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(sf.Name)
	}
	return name
}

// fileFormat names the format of a config file by its extension.
func fileFormat(path string) string {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	}
	return ""
}

// apply round-trips the merged map through YAML so yaml tags drive the mapping.
func (b *BaseConfigFeeder) apply(config map[string]interface{}, target interface{}) error {
	yamlData, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal merged config: %w", err)
	}
	if err := yaml.Unmarshal(yamlData, target); err != nil {
		return fmt.Errorf("failed to unmarshal config to target struct: %w", err)
	}
	return nil
}

func (b *BaseConfigFeeder) debug(msg string, args ...any) {
	if b.verboseDebug && b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

// findConfigFile searches dir for name with the extensions .yaml, .yml, .json, .toml
// in that order and returns the first match, or "".
func findConfigFile(dir, name string) string {
	for _, ext := range []string{".yaml", ".yml", ".json", ".toml"} {
		configPath := filepath.Join(dir, name+ext)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}
	return ""
}

// loadConfigFile decodes a config file by extension. An empty path yields an empty map.
func loadConfigFile(filePath string) (map[string]interface{}, error) {
	config := make(map[string]interface{})
	if filePath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	switch filepath.Ext(filePath) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".toml":
		err = toml.Unmarshal(data, &config)
	default:
		return nil, wrapBaseConfigFormatError(filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", filePath, err)
	}
	if config == nil {
		config = make(map[string]interface{})
	}
	return config, nil
}

func mergeConfigs(base, override map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(override))
	for key, value := range base {
		merged[key] = value
	}

	for key, overrideValue := range override {
		if baseMap, ok := base[key].(map[string]interface{}); ok {
			if overrideMap, ok := overrideValue.(map[string]interface{}); ok {
				merged[key] = mergeConfigs(baseMap, overrideMap)
				continue
			}
		}
		merged[key] = overrideValue
	}
	return merged
}

// IsBaseConfigStructure checks if the given directory has base/ and environments/ subdirectories
func IsBaseConfigStructure(configDir string) bool {
	for _, sub := range []string{"base", "environments"} {
		if stat, err := os.Stat(filepath.Join(configDir, sub)); err != nil || !stat.IsDir() {
			return false
		}
	}
	return true
}

// GetAvailableEnvironments returns the environments found in the config directory, sorted
func GetAvailableEnvironments(configDir string) []string {
	entries, err := os.ReadDir(filepath.Join(configDir, "environments"))
	if err != nil {
		return nil
	}

	var environments []string
	for _, entry := range entries {
		if entry.IsDir() {
			environments = append(environments, entry.Name())
		}
	}
	sort.Strings(environments)
	return environments
}
