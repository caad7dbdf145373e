// Package plugins is the host side of version source discovery: the
// interface a version source implements and the registry sources are looked
// up in by name.
package plugins

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/indaco/regexcommit/internal/config"
)

// ErrUnknownSource is returned by Lookup for unregistered names.
var ErrUnknownSource = errors.New("unknown version source")

// VersionData is what a source reports about the version it currently
// holds.
type VersionData struct {
	Version string
	Path    string
}

// VersionSource reads and updates a project version.
type VersionSource interface {
	Name() string
	GetVersionData(ctx context.Context) (VersionData, error)
	SetVersion(ctx context.Context, newVersion string, data VersionData) error
}

// Factory builds a VersionSource from a loaded configuration.
type Factory func(cfg *config.Config) (VersionSource, error)

// Registry maps source names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds factory under name. Names are unique.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("version source name is required")
	}
	if factory == nil {
		return fmt.Errorf("version source %q: factory is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("version source %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownSource, name, r.namesLocked())
	}
	return f, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open builds the source selected by cfg.Options.Source.
func (r *Registry) Open(cfg *config.Config) (VersionSource, error) {
	factory, err := r.Lookup(cfg.Options.Source)
	if err != nil {
		return nil, err
	}
	return factory(cfg)
}
