package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/specialistvlad/firmgen/internal/errors"
)

// Module is the interface that all built-in component modules implement to
// be registered.
type Module interface {
	Register(r *Registry)
}

// Registry is one layer of kind entries.
type Registry struct {
	name    string
	base    *Registry
	entries map[string]*Entry
	frozen  bool
}

// New creates an empty root registry.
func New(name string) *Registry {
	return &Registry{name: name, entries: make(map[string]*Entry)}
}

// Derive returns a new layer on top of r. Entries registered on the layer
// shadow those of r; r itself is never modified.
func (r *Registry) Derive(name string) *Registry {
	return &Registry{name: name, base: r, entries: make(map[string]*Entry)}
}

// Name returns the layer name.
func (r *Registry) Name() string { return r.name }

// Register adds an entry to this layer. A key may be registered once per
// layer; shadowing a key of a base layer is allowed.
func (r *Registry) Register(e *Entry) error {
	if r.frozen {
		return errors.Newf("registry %q is frozen; cannot register %q", r.name, e.Key)
	}
	if e.Key == "" || e.Generate == nil || e.Schema == nil {
		return errors.Newf("registry %q: entry %q needs a key, a schema and a generator", r.name, e.Key)
	}
	if _, exists := r.entries[e.Key]; exists {
		return errors.Wrapf(errors.ErrDuplicateID, "registry %q: kind %q already registered", r.name, e.Key)
	}
	slog.Debug("Registering kind.", "registry", r.name, "key", e.Key)
	r.entries[e.Key] = e
	return nil
}

// MustRegister is Register for module setup code, where a duplicate is a
// programming error.
func (r *Registry) MustRegister(e *Entry) {
	if err := r.Register(e); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}

// Install lets every module register its kinds.
func (r *Registry) Install(mods ...Module) {
	for _, m := range mods {
		m.Register(r)
	}
}

// Freeze makes this layer read-only.
func (r *Registry) Freeze() { r.frozen = true }

// Lookup resolves a kind through the layers, nearest first.
func (r *Registry) Lookup(key string) (*Entry, error) {
	for l := r; l != nil; l = l.base {
		if e, ok := l.entries[key]; ok {
			return e, nil
		}
	}

	err := errors.Wrapf(errors.ErrUnknownDiscriminator, "no generator registered for kind %q", key)
	domain, _, _ := strings.Cut(key, ".")
	var siblings []string
	for _, k := range r.Keys() {
		if d, _, _ := strings.Cut(k, "."); d == domain {
			siblings = append(siblings, k)
		}
	}
	if len(siblings) > 0 {
		err = errors.WithHintf(err, "known kinds in %q: %s", domain, strings.Join(siblings, ", "))
	}
	return nil, err
}

// Keys returns every key visible from r, sorted.
func (r *Registry) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for l := r; l != nil; l = l.base {
		for k := range l.entries {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
