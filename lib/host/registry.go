package host

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownPlugin is returned by Create when no factory is registered under the name.
var ErrUnknownPlugin = errors.New("unknown plugin")

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes a plugin factory available under name. Plugins call it from init().
// It panics if name is empty, f is nil, or name is already registered.
func Register(name string, f Factory) {
	if name == "" {
		panic("host: Register with empty plugin name")
	}
	if f == nil {
		panic("host: Register factory is nil for " + name)
	}
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[name]; dup {
		panic("host: Register called twice for " + name)
	}
	factories[name] = f
}

// Create invokes the factory registered under name.
func Create(ctx context.Context, name string, cfg *Config) (Plugin, error) {
	factoriesMu.RLock()
	f, ok := factories[name]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}
	return f(ctx, cfg)
}

// Names returns the registered plugin names in sorted order.
func Names() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
