package persona

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Registry.Get for an unknown persona ID.
var ErrNotFound = errors.New("persona not found")

// Registry holds the roundtable personas in speaking order. The order is
// fixed at construction and defines the conversational phase sequence, so
// it must be stable for the lifetime of the process.
type Registry struct {
	ordered []Persona
	byID    map[ID]Persona
}

// NewRegistry builds a registry from personas in the given speaking order.
func NewRegistry(personas ...Persona) *Registry {
	byID := make(map[ID]Persona, len(personas))
	for _, p := range personas {
		byID[p.ID()] = p
	}
	return &Registry{
		ordered: personas,
		byID:    byID,
	}
}

// DefaultRegistry returns the base five-persona roundtable in speaking
// order: Director opens, the Platform Strategist closes with the
// platform-specific read.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewDirector(),
		NewCinematographer(),
		NewEditor(),
		NewSoundDesigner(),
		NewPlatformStrategist(),
	)
}

// All returns the personas in speaking order. The returned slice is a copy;
// callers cannot disturb the registry's ordering.
func (r *Registry) All() []Persona {
	out := make([]Persona, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get looks up a persona by ID.
func (r *Registry) Get(id ID) (Persona, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// Len returns the number of registered personas.
func (r *Registry) Len() int {
	return len(r.ordered)
}
