// Package property implements the named-property store the camera exposes
// to its host. Each property is a pair of read/write handlers registered
// once at initialization; the camera's acquisition state stays the single
// source of truth the handlers read from and write to.
package property

import (
	"fmt"
	"sort"
	"sync"
)

// Getter reads the current property value from its owner.
type Getter func() (string, error)

// Setter applies a new property value to its owner. Setters validate: a
// rejected value (unsupported mode, device busy) must leave state untouched.
type Setter func(value string) error

type entry struct {
	get      Getter
	set      Setter
	readOnly bool
	allowed  map[string]bool
}

// Store maps property names to handler pairs. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	props map[string]*entry
}

// NewStore creates an empty property store.
func NewStore() *Store {
	return &Store{props: make(map[string]*entry)}
}

// Register adds a property. A nil set handler (or readOnly) makes the
// property read-only. allowed restricts accepted values; empty means any.
// Registering the same name twice replaces the previous handlers.
func (s *Store) Register(name string, get Getter, set Setter, readOnly bool, allowed ...string) {
	e := &entry{get: get, set: set, readOnly: readOnly || set == nil}
	if len(allowed) > 0 {
		e.allowed = make(map[string]bool, len(allowed))
		for _, v := range allowed {
			e.allowed[v] = true
		}
	}

	s.mu.Lock()
	s.props[name] = e
	s.mu.Unlock()
}

// Get returns the current value of the named property.
func (s *Store) Get(name string) (string, error) {
	s.mu.RLock()
	e, ok := s.props[name]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown property %q", name)
	}
	return e.get()
}

// Set applies a new value to the named property via its write handler.
func (s *Store) Set(name, value string) error {
	s.mu.RLock()
	e, ok := s.props[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown property %q", name)
	}
	if e.readOnly {
		return fmt.Errorf("property %q is read-only", name)
	}
	if e.allowed != nil && !e.allowed[value] {
		return fmt.Errorf("value %q not allowed for property %q", value, name)
	}
	return e.set(value)
}

// Names returns the registered property names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.props))
	for n := range s.props {
		names = append(names, n)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}
