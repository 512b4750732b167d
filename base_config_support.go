package testartifacts

import (
	"os"

	"github.com/GoCodeAlone/testartifacts/feeders"
)

// DefaultEnvironment is used when no environment is named and none is found on disk.
const DefaultEnvironment = "dev"

// environmentVariables are consulted in order to pick the config environment.
var environmentVariables = []string{"APP_ENVIRONMENT", "ENVIRONMENT", "ENV"}

// BaseConfigOptions holds configuration for base config support
type BaseConfigOptions struct {
	// ConfigDir is the root directory containing base/ and environments/ subdirectories
	ConfigDir string
	// Environment specifies which environment overrides to apply
	Environment string
	Enabled     bool
}

// BaseConfigSettings holds the global base config settings
var BaseConfigSettings BaseConfigOptions

// SetBaseConfig enables layered configuration from configDir for the given environment
func SetBaseConfig(configDir, environment string) {
	BaseConfigSettings = BaseConfigOptions{
		ConfigDir:   configDir,
		Environment: environment,
		Enabled:     true,
	}
}

// ResetBaseConfig disables base config support.
func ResetBaseConfig() {
	BaseConfigSettings = BaseConfigOptions{}
}

// IsBaseConfigEnabled returns true if base configuration support is enabled
func IsBaseConfigEnabled() bool {
	return BaseConfigSettings.Enabled
}

// DetectBaseConfigStructure enables base config for the first directory that has a
// base config layout. With no arguments it checks "config", "configs" and ".".
func DetectBaseConfigStructure(configDirs ...string) bool {
	if len(configDirs) == 0 {
		configDirs = []string{"config", "configs", "."}
	}

	for _, configDir := range configDirs {
		if feeders.IsBaseConfigStructure(configDir) {
			SetBaseConfig(configDir, ResolveEnvironmentName(configDir))
			return true
		}
	}
	return false
}

// ResolveEnvironmentName picks the environment from APP_ENVIRONMENT, ENVIRONMENT or ENV,
// then the first environment directory under configDir, then DefaultEnvironment.
func ResolveEnvironmentName(configDir string) string {
	for _, name := range environmentVariables {
		if env := os.Getenv(name); env != "" {
			return env
		}
	}
	if environments := feeders.GetAvailableEnvironments(configDir); len(environments) > 0 {
		return environments[0]
	}
	return DefaultEnvironment
}

// GetBaseConfigFeeder returns a BaseConfigFeeder if base config is enabled
func GetBaseConfigFeeder() *feeders.BaseConfigFeeder {
	if !BaseConfigSettings.Enabled {
		return nil
	}
	return feeders.NewBaseConfigFeeder(BaseConfigSettings.ConfigDir, BaseConfigSettings.Environment)
}
