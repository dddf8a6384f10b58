// Package cache holds loaded modules for cross-module name resolution.
package cache

import (
	"sort"
	"sync"

	"github.com/c360studio/sdml/model"
)

// ModuleCache is the read-only lookup contract used during lowering. Lookups
// never trigger loading.
type ModuleCache interface {
	Get(name model.Identifier) (*model.Module, bool)
	ModuleNameToURI(name model.Identifier) (*model.URI, bool)
}

// Store is an in-memory ModuleCache. It is safe for concurrent use; readers
// see a module only after Insert returns.
type Store struct {
	mu      sync.RWMutex
	modules map[model.Identifier]*model.Module
}

// NewStore returns a store holding the given modules.
func NewStore(modules ...*model.Module) *Store {
	s := &Store{modules: make(map[model.Identifier]*model.Module, len(modules))}
	for _, m := range modules {
		s.Insert(m)
	}
	return s
}

// Insert adds or replaces a module by name.
func (s *Store) Insert(m *model.Module) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules[m.Name] = m
}

// Remove deletes a module by name.
func (s *Store) Remove(name model.Identifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.modules, name)
}

// Get returns the module with the given name.
func (s *Store) Get(name model.Identifier) (*model.Module, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.modules[name]
	return m, ok
}

// ModuleNameToURI returns the base URI of a loaded module. It reports false
// both for unknown modules and for modules without a base URI.
func (s *Store) ModuleNameToURI(name model.Identifier) (*model.URI, bool) {
	m, ok := s.Get(name)
	if !ok || m.BaseURI == nil {
		return nil, false
	}
	return m.BaseURI, true
}

// Contains reports whether a module is loaded.
func (s *Store) Contains(name model.Identifier) bool {
	_, ok := s.Get(name)
	return ok
}

// Len returns the number of loaded modules.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modules)
}

// Names returns the loaded module names, sorted.
func (s *Store) Names() []model.Identifier {
	s.mu.RLock()
	names := make([]model.Identifier, 0, len(s.modules))
	for name := range s.modules {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })
	return names
}

// MissingImports returns the modules imported by m that are not loaded.
func (s *Store) MissingImports(m *model.Module) []model.Identifier {
	var missing []model.Identifier
	for _, imp := range m.ImportedModules() {
		if !s.Contains(imp.Name) {
			missing = append(missing, imp.Name)
		}
	}
	return missing
}
