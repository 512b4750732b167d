package testartifacts

import (
	"context"
)

// ServiceRegistry maps service names to the instances a context hands out.
type ServiceRegistry map[string]any

// RegisterService registers service under name on the context.
func RegisterService[T any](tc *TestContext, name string, service *T) error {
	if service == nil {
		return ErrServiceNil
	}
	return tc.register(context.Background(), name, service)
}

// GetService retrieves a service by name. It reports false when the name is
// unknown or registered with a different type.
func GetService[T any](tc *TestContext, name string) (*T, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	svc, ok := tc.services[name].(*T)
	return svc, ok
}

func (tc *TestContext) register(ctx context.Context, name string, service any) error {
	tc.mu.Lock()
	if _, exists := tc.services[name]; exists {
		tc.mu.Unlock()
		return ErrServiceAlreadyRegistered
	}
	tc.services[name] = service
	tc.mu.Unlock()

	tc.logger.Debug("Service registered", "name", name)
	tc.emit(ctx, EventTypeServiceRegistered, map[string]any{"name": name})
	return nil
}

// ServiceNames returns the names of all registered services.
func (tc *TestContext) ServiceNames() []string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	names := make([]string, 0, len(tc.services))
	for name := range tc.services {
		names = append(names, name)
	}
	return names
}
