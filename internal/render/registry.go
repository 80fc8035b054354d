package render

import "sync"

// BackendFactory creates a new backend instance with default options.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	factories  = make(map[string]BackendFactory)
)

// Register registers a backend factory with the given name. This is
// typically called from init() functions in backend files. An existing
// registration with the same name is replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get returns a backend instance by name, or nil if none is registered.
func Get(name string) Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := factories[name]
	if !ok {
		return nil
	}
	return factory()
}
