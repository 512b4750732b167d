// Package testartifacts builds the context integration tests run in: it feeds
// configuration from explicit sources, validates it, and hands the resulting
// Environment to the tests through a name-keyed service registry.
package testartifacts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	cfgsrc "github.com/GoCodeAlone/testartifacts/config"
	"github.com/GoCodeAlone/testartifacts/feeders"
)

// Option configures a TestContext.
type Option func(*TestContext)

// WithConfigFeeders replaces the default feeders. Feeders run in order; later
// feeders override values set by earlier ones.
func WithConfigFeeders(fs ...Feeder) Option {
	return func(tc *TestContext) {
		tc.feeders = append(tc.feeders, fs...)
	}
}

// WithConfigSection registers a named configuration section.
func WithConfigSection(name string, cp ConfigProvider) Option {
	return func(tc *TestContext) {
		tc.sections[name] = cp
	}
}

// WithObserver registers an observer before the context loads. A nil observer
// makes Load fail with ErrObserverNil.
func WithObserver(observer Observer, eventTypes ...string) Option {
	return func(tc *TestContext) {
		if err := tc.RegisterObserver(observer, eventTypes...); err != nil {
			tc.optErr = errors.Join(tc.optErr, err)
		}
	}
}

// WithVerboseConfig turns on debug logging inside feeders that support it.
func WithVerboseConfig(enabled bool) Option {
	return func(tc *TestContext) {
		tc.verbose = enabled
	}
}

// TestContext is the explicitly constructed context shared by integration tests.
// It is loaded once; afterwards it is read-only and safe for parallel tests.
type TestContext struct {
	id          string
	cfgProvider ConfigProvider
	sections    map[string]ConfigProvider
	feeders     []Feeder
	verbose     bool
	logger      Logger
	tracker     *feeders.DefaultFieldTracker

	mu        sync.RWMutex
	services  ServiceRegistry
	observers []observerRegistration
	sources   []*cfgsrc.Source
	attempted bool
	loaded    bool
	optErr    error
}

// NewTestContext creates a context around the main configuration. A nil logger
// discards all output.
func NewTestContext(cp ConfigProvider, logger Logger, opts ...Option) *TestContext {
	if logger == nil {
		logger = nopLogger{}
	}
	tc := &TestContext{
		id:          newID(),
		cfgProvider: cp,
		sections:    make(map[string]ConfigProvider),
		logger:      logger,
		tracker:     feeders.NewDefaultFieldTracker(),
		services:    make(ServiceRegistry),
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

// ID returns the unique id of this context run.
func (tc *TestContext) ID() string {
	return tc.id
}

// Logger returns the context logger.
func (tc *TestContext) Logger() Logger {
	return tc.logger
}

// RegisterObserver adds an observer. With no event types it receives every event.
func (tc *TestContext) RegisterObserver(observer Observer, eventTypes ...string) error {
	if observer == nil {
		return ErrObserverNil
	}

	types := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		types[t] = true
	}

	tc.mu.Lock()
	tc.observers = append(tc.observers, observerRegistration{observer: observer, eventTypes: types})
	tc.mu.Unlock()

	tc.logger.Debug("Observer registered", "observerID", observer.ObserverID(), "eventTypes", eventTypes)
	return nil
}

// Load feeds, validates and registers configuration. It runs once; later calls
// return ErrContextAlreadyLoaded.
func (tc *TestContext) Load(ctx context.Context) error {
	tc.mu.Lock()
	if tc.attempted {
		tc.mu.Unlock()
		return ErrContextAlreadyLoaded
	}
	tc.attempted = true
	tc.mu.Unlock()

	if err := tc.load(ctx); err != nil {
		tc.logger.Error("Failed to load test context", "contextID", tc.id, "error", err)
		tc.emit(ctx, EventTypeContextFailed, map[string]any{"error": err.Error()})
		return err
	}

	tc.mu.Lock()
	tc.loaded = true
	tc.mu.Unlock()

	tc.logger.Info("Test context loaded", "contextID", tc.id, "sources", len(tc.sources))
	tc.emit(ctx, EventTypeContextLoaded, map[string]any{"contextID": tc.id})
	return nil
}

func (tc *TestContext) load(ctx context.Context) error {
	if tc.optErr != nil {
		return fmt.Errorf("invalid test context option: %w", tc.optErr)
	}
	if tc.cfgProvider == nil {
		return ErrConfigProviderNil
	}

	fs := tc.feeders
	if len(fs) == 0 {
		fs = DefaultConfigFeeders()
	}

	for i, f := range fs {
		if err := tc.feed(f, i); err != nil {
			return err
		}
	}

	if err := tc.newConfig().Validate(); err != nil {
		return err
	}
	tc.emit(ctx, EventTypeConfigLoaded, map[string]any{"sources": len(fs)})

	envCfg := tc.environmentConfig()
	if envCfg == nil {
		tc.logger.Warn("No environment configuration registered", "contextID", tc.id)
		return nil
	}
	return tc.register(ctx, EnvironmentServiceName, NewEnvironment(envCfg))
}

// feed runs one feeder over every structure and records it as a source.
func (tc *TestContext) feed(f Feeder, priority int) error {
	if vf, ok := f.(VerboseAwareFeeder); ok && tc.verbose {
		vf.SetVerboseDebug(true, tc.logger)
	}
	if tf, ok := f.(FieldTrackingFeeder); ok {
		tf.SetFieldTracker(tc.tracker)
	}

	src := describeFeeder(f, priority)
	tc.mu.Lock()
	tc.sources = append(tc.sources, src)
	tc.mu.Unlock()

	cfg := tc.newConfig()
	cfg.AddFeeder(f)
	if err := cfg.Feed(); err != nil {
		src.MarkFailed(err)
		return fmt.Errorf("feeding from %s: %w", src.Name, err)
	}
	src.MarkLoaded(time.Now())

	tc.logger.Debug("Configuration source loaded", "source", src.Name, "type", src.Type, "location", src.Location)
	return nil
}

func (tc *TestContext) newConfig() *Config {
	cfg := NewConfig()
	if main := tc.cfgProvider.GetConfig(); main != nil {
		cfg.AddMainStruct(main)
	}
	for name, cp := range tc.sections {
		if cp != nil && cp.GetConfig() != nil {
			cfg.AddStructKey(name, cp.GetConfig())
		}
	}
	return cfg
}

// environmentConfig prefers an "environment" section over the main config.
func (tc *TestContext) environmentConfig() *EnvironmentConfig {
	if cp, ok := tc.sections[EnvironmentServiceName]; ok && cp != nil {
		if cfg, ok := cp.GetConfig().(*EnvironmentConfig); ok {
			return cfg
		}
	}
	if cfg, ok := tc.cfgProvider.GetConfig().(*EnvironmentConfig); ok {
		return cfg
	}
	return nil
}

// Environment returns the Environment registered by Load.
func (tc *TestContext) Environment() (*Environment, error) {
	tc.mu.RLock()
	loaded := tc.loaded
	tc.mu.RUnlock()
	if !loaded {
		return nil, ErrContextNotLoaded
	}

	env, ok := GetService[Environment](tc, EnvironmentServiceName)
	if !ok {
		return nil, ErrEnvironmentMissing
	}
	return env, nil
}

// Sources returns the configuration sources in feed order.
func (tc *TestContext) Sources() []*cfgsrc.Source {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	out := make([]*cfgsrc.Source, len(tc.sources))
	copy(out, tc.sources)
	return out
}

// Provenance reports which source last populated the field at fieldPath.
// Only feeders that track fields contribute; the plain YAML, TOML and JSON feeders do not.
func (tc *TestContext) Provenance(fieldPath string) (*cfgsrc.FieldProvenance, bool) {
	fp, ok := tc.tracker.PopulationFor(fieldPath)
	if !ok {
		return nil, false
	}
	return &cfgsrc.FieldProvenance{
		FieldPath:    fp.FieldPath,
		Source:       fp.SourceType,
		SourceDetail: fp.SourceKey,
		Value:        fp.Value,
	}, true
}

// emit notifies matching observers in registration order. Observer errors are
// logged and never fail the caller.
func (tc *TestContext) emit(ctx context.Context, eventType string, data any) {
	event := NewCloudEvent(eventType, "testartifacts/context/"+tc.id, data)
	if err := ValidateCloudEvent(event); err != nil {
		tc.logger.Error("Invalid CloudEvent", "eventType", eventType, "error", err)
		return
	}

	tc.mu.RLock()
	observers := make([]observerRegistration, len(tc.observers))
	copy(observers, tc.observers)
	tc.mu.RUnlock()

	for _, reg := range observers {
		if !reg.wants(eventType) {
			continue
		}
		if err := reg.observer.OnEvent(ctx, event); err != nil {
			tc.logger.Error("Observer error", "observerID", reg.observer.ObserverID(), "event", eventType, "error", err)
		}
	}
}
