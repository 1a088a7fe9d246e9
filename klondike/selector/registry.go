package selector

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Factory builds a fresh selector from a seed.
type Factory func(seed int64) Selector

// Registry holds named selector factories. "random" and "greedy" are built in.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry with the built-in selectors.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("random", func(seed int64) Selector { return NewRandomSelector(seed) })
	r.Register("greedy", func(seed int64) Selector { return NewRuleSelector(nil, seed) })
	return r
}

// Register adds or replaces a factory.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// New builds the named selector.
func (r *Registry) New(name string, seed int64) (Selector, error) {
	r.mu.RLock()
	f := r.factories[name]
	r.mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("unknown selector %q (have %v)", name, r.Names())
	}
	return f(seed), nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadFromFile registers rule selectors from a JSON persona file.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read personas file: %w", err)
	}
	return r.LoadFromJSON(data)
}

// LoadFromJSON registers one rule selector per persona, keyed by ID.
func (r *Registry) LoadFromJSON(data []byte) error {
	var list []*Persona
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse personas JSON: %w", err)
	}
	for _, p := range list {
		if p == nil || p.ID == "" {
			continue
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		persona := p
		r.Register(p.ID, func(seed int64) Selector { return NewRuleSelector(persona, seed) })
	}
	return nil
}
