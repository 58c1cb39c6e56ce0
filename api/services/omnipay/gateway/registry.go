package gateway

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a fresh, unconfigured gateway.
type Factory func() Gateway

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a driver available under its short name. Drivers call it
// from init, so a duplicate or nil factory is a programming error and panics.
func Register(shortName string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("gateway: Register factory is nil for " + shortName)
	}
	if _, dup := factories[shortName]; dup {
		panic("gateway: Register called twice for " + shortName)
	}
	factories[shortName] = factory
}

// Create builds the driver registered under shortName.
func Create(shortName string) (Gateway, error) {
	registryMu.RLock()
	factory, ok := factories[shortName]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGatewayNotFound, shortName)
	}
	return factory(), nil
}

// Names returns the registered short names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registered reports whether a driver exists for shortName.
func Registered(shortName string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[shortName]
	return ok
}
