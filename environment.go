package testartifacts

import (
	"fmt"
	"net/url"
)

// EnvironmentServiceName is the service name the loaded Environment is registered under.
const EnvironmentServiceName = "environment"

// EnvironmentConfig is the configuration contract for the deployment under test.
// Both values are required; the context refuses to load without them.
type EnvironmentConfig struct {
	ServerURL  string `yaml:"server_url" toml:"server_url" json:"server_url" env:"SERVER_URL" required:"true" desc:"Base URL of the server under test"`
	ServerName string `yaml:"server_name" toml:"server_name" json:"server_name" env:"SERVER_NAME" required:"true" desc:"Display name of the server under test"`
}

// Validate checks that ServerURL is an absolute URL.
func (c *EnvironmentConfig) Validate() error {
	if c.ServerURL == "" {
		return nil // reported by the required check
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidServerURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidServerURL, c.ServerURL)
	}
	return nil
}

// Environment holds the settings of the deployment the integration tests run against.
type Environment struct {
	serverURL  string
	serverName string
}

// NewEnvironment creates an Environment holding the configured values.
// A nil config yields an empty Environment.
func NewEnvironment(cfg *EnvironmentConfig) *Environment {
	if cfg == nil {
		return &Environment{}
	}
	return &Environment{
		serverURL:  cfg.ServerURL,
		serverName: cfg.ServerName,
	}
}

// ServerURL returns the base URL of the server under test.
func (e *Environment) ServerURL() string {
	return e.serverURL
}

// SetServerURL replaces the server URL.
func (e *Environment) SetServerURL(serverURL string) {
	e.serverURL = serverURL
}

// ServerName returns the display name of the server under test.
func (e *Environment) ServerName() string {
	return e.serverName
}

// SetServerName replaces the server name.
func (e *Environment) SetServerName(serverName string) {
	e.serverName = serverName
}
