package testartifacts

import (
	"fmt"

	"github.com/golobby/config/v3"

	cfgsrc "github.com/GoCodeAlone/testartifacts/config"
	"github.com/GoCodeAlone/testartifacts/feeders"
)

// Feeder populates a configuration struct from one source.
type Feeder = config.Feeder

// ComplexFeeder can also populate a single named section.
type ComplexFeeder interface {
	Feeder
	FeedKey(string, interface{}) error
}

// VerboseAwareFeeder is implemented by feeders that can log each step.
type VerboseAwareFeeder interface {
	SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) })
}

// FieldTrackingFeeder is implemented by feeders that report populated fields.
type FieldTrackingFeeder interface {
	SetFieldTracker(tracker feeders.FieldTracker)
}

// DefaultConfigFeeders returns the feeders used when none are configured:
// the layered base config when one is enabled or detected, then the OS environment.
func DefaultConfigFeeders() []Feeder {
	fs := make([]Feeder, 0, 2)
	if IsBaseConfigEnabled() || DetectBaseConfigStructure() {
		fs = append(fs, GetBaseConfigFeeder())
	}
	return append(fs, feeders.NewEnvFeeder())
}

// describeFeeder builds the source record for a feeder at the given feed position.
func describeFeeder(f Feeder, priority int) *cfgsrc.Source {
	src := &cfgsrc.Source{Priority: priority}
	switch ft := f.(type) {
	case *feeders.EnvFeeder:
		src.Name, src.Type = "environment", cfgsrc.SourceTypeEnv
	case *feeders.AffixedEnvFeeder:
		src.Name, src.Type = fmt.Sprintf("environment(%s_*_%s)", ft.Prefix, ft.Suffix), cfgsrc.SourceTypeEnv
	case *feeders.DotEnvFeeder:
		src.Name, src.Type, src.Location = "dotenv", cfgsrc.SourceTypeDotEnv, ft.Path
	case feeders.YamlFeeder:
		src.Name, src.Type, src.Location = "yaml", cfgsrc.SourceTypeYAML, ft.Path
	case feeders.TomlFeeder:
		src.Name, src.Type, src.Location = "toml", cfgsrc.SourceTypeTOML, ft.Path
	case feeders.JSONFeeder:
		src.Name, src.Type, src.Location = "json", cfgsrc.SourceTypeJSON, ft.Path
	case *feeders.BaseConfigFeeder:
		src.Name, src.Type, src.Location = "base-config:"+ft.Environment, cfgsrc.SourceTypeBaseConfig, ft.BaseDir
	default:
		src.Name, src.Type = fmt.Sprintf("%T", f), cfgsrc.SourceTypeCustom
	}
	return src
}
