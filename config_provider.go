package testartifacts

import (
	"fmt"
	"sort"

	"github.com/golobby/config/v3"
)

// ConfigProvider defines the interface for providing configuration objects
type ConfigProvider interface {
	// GetConfig returns the configuration object
	GetConfig() any
}

// StdConfigProvider provides a standard implementation of ConfigProvider
type StdConfigProvider struct {
	cfg any
}

// GetConfig returns the configuration object
func (s *StdConfigProvider) GetConfig() any {
	return s.cfg
}

// NewStdConfigProvider creates a new standard configuration provider
func NewStdConfigProvider(cfg any) *StdConfigProvider {
	return &StdConfigProvider{cfg: cfg}
}

// Config combines feeders with a main structure and named section structures.
type Config struct {
	*config.Config
	StructKeys map[string]interface{}
	mains      []interface{}
}

// NewConfig creates a new configuration builder
func NewConfig() *Config {
	return &Config{
		Config:     config.New(),
		StructKeys: make(map[string]interface{}),
	}
}

// AddMainStruct adds a structure fed from the whole source
func (c *Config) AddMainStruct(target interface{}) *Config {
	c.Config.AddStruct(target)
	c.mains = append(c.mains, target)
	return c
}

// AddStructKey adds a section structure under key
func (c *Config) AddStructKey(key string, target interface{}) *Config {
	c.StructKeys[key] = target
	return c
}

// Feed runs every feeder over the main structures, then over each section.
// Complex feeders receive the section key; plain feeders feed the section directly.
// Feeder errors stay matchable with errors.Is.
func (c *Config) Feed() error {
	for _, s := range c.mains {
		for _, f := range c.Feeders {
			if err := f.Feed(s); err != nil {
				return fmt.Errorf("%w: %w", ErrConfigFeederError, err)
			}
		}
	}

	for _, key := range c.sectionKeys() {
		target := c.StructKeys[key]
		for _, f := range c.Feeders {
			var err error
			if cf, ok := f.(ComplexFeeder); ok {
				err = cf.FeedKey(key, target)
			} else {
				err = f.Feed(target)
			}
			if err != nil {
				return fmt.Errorf("%w: section %s: %w", ErrConfigFeederError, key, err)
			}
		}
	}
	return nil
}

// Validate applies defaults and validates the main structures and every section.
func (c *Config) Validate() error {
	for _, s := range c.mains {
		if err := ValidateConfig(s); err != nil {
			return fmt.Errorf("config validation error: %w", err)
		}
	}
	for _, key := range c.sectionKeys() {
		if err := ValidateConfig(c.StructKeys[key]); err != nil {
			return fmt.Errorf("config validation error for %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) sectionKeys() []string {
	keys := make([]string, 0, len(c.StructKeys))
	for key := range c.StructKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
