package testartifacts

import (
	"errors"
)

// Context errors
var (
	ErrContextNotLoaded     = errors.New("test context not loaded")
	ErrContextAlreadyLoaded = errors.New("test context already loaded")
	ErrConfigProviderNil    = errors.New("failed to load config: config provider is nil")
	ErrEnvironmentMissing   = errors.New("no environment configuration registered")
)

// Configuration errors
var (
	ErrConfigNil                  = errors.New("config is nil")
	ErrConfigNotPointer           = errors.New("config must be a pointer")
	ErrConfigNotStruct            = errors.New("config must be a struct")
	ErrConfigRequiredFieldMissing = errors.New("required field is missing")
	ErrConfigValidationFailed     = errors.New("config validation failed")
	ErrConfigFeederError          = errors.New("config feeder error")
	ErrConfigSectionNotFound      = errors.New("config section not found")
	ErrUnsupportedTypeForDefault  = errors.New("unsupported type for default value")
	ErrUnsupportedFormatType      = errors.New("unsupported format type")
	ErrInvalidServerURL           = errors.New("server url must be absolute")
)

// Service registry errors
var (
	ErrServiceAlreadyRegistered = errors.New("service already registered")
	ErrServiceNil               = errors.New("service is nil")
)

// Observer errors
var (
	ErrObserverNil = errors.New("observer is nil")
)
