// Package symbol provides the per-pass symbol table that hands out unique
// C++ identifiers and binds config ids to their handles.
//
// # Names
//
// Every variable the generator declares needs a C++ name that is unique in
// the translation unit. Names come from two places:
//
//   - Manual ids written by the user keep their exact spelling. Two objects
//     claiming the same manual name fail with errors.ErrDuplicateID.
//   - Auto ids are seeds. The first allocation of a seed keeps it; later ones
//     get `_2`, `_3`, ... suffixes. Manual names reserved up front are never
//     handed out as auto names.
//
// Seeds are sanitised into valid identifiers and C++ keywords get a trailing
// underscore.
//
// # Concurrency Model
//
// A Table has no locks. The scheduler runs exactly one generator at a time,
// so every call happens on the single logical thread of a pass.
package symbol

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// Table is the symbol table of one generation pass.
type Table struct {
	taken    map[string]bool        // Key: C++ name already handed out
	reserved map[string]bool        // Key: manual name claimed before allocation
	counters map[string]int         // Key: auto seed, Value: last suffix used
	bindings map[string]*cpp.Handle // Key: config id name
	order    []string               // Bound id names in binding order
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{
		taken:    make(map[string]bool),
		reserved: make(map[string]bool),
		counters: make(map[string]int),
		bindings: make(map[string]*cpp.Handle),
	}
}

// Reserve claims a manual name before any generator runs so auto names
// never take it. Reserving the same name twice fails with ErrDuplicateID.
func (t *Table) Reserve(name string) error {
	if t.reserved[name] || t.taken[name] {
		return errors.Wrapf(errors.ErrDuplicateID, "id %q is declared more than once", name)
	}
	if isKeyword(name) {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "id %q is a reserved C++ keyword", name),
			"choose a different id",
		)
	}
	t.reserved[name] = true
	return nil
}

// IsReserved reports whether name was reserved for a manual or block id.
func (t *Table) IsReserved(name string) bool { return t.reserved[name] }

// Allocate returns a fresh C++ name derived from base.
func (t *Table) Allocate(base string, manual bool) (string, error) {
	if manual {
		if t.taken[base] {
			return "", errors.Wrapf(errors.ErrDuplicateID, "id %q is already declared", base)
		}
		if isKeyword(base) || Sanitize(base) != base {
			return "", errors.Wrapf(errors.ErrInvalidConfig, "id %q is not a valid C++ identifier", base)
		}
		t.taken[base] = true
		return base, nil
	}

	seed := Sanitize(base)
	name := seed
	for t.taken[name] || t.reserved[name] {
		t.counters[seed]++
		// Suffixes start at 2 so the first duplicate reads as "the second one".
		name = seed + "_" + strconv.Itoa(t.counters[seed]+1)
	}
	t.taken[name] = true
	return name, nil
}

// Bind records the handle declared for a config id. An id binds at most once.
func (t *Table) Bind(id string, h *cpp.Handle) error {
	if _, ok := t.bindings[id]; ok {
		return errors.Wrapf(errors.ErrDuplicateID, "id %q already has a declared variable", id)
	}
	t.bindings[id] = h
	t.order = append(t.order, id)
	return nil
}

// Lookup returns the handle bound to id, if any.
func (t *Table) Lookup(id string) (*cpp.Handle, bool) {
	h, ok := t.bindings[id]
	return h, ok
}

// Handles returns every bound handle in binding order.
func (t *Table) Handles() []*cpp.Handle {
	out := make([]*cpp.Handle, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.bindings[id])
	}
	return out
}

// Sanitize turns an arbitrary seed into a valid, non-keyword C++ identifier.
func Sanitize(s string) string {
	if s == "" {
		return "var"
	}
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	out := sb.String()
	if isKeyword(out) {
		out += "_"
	}
	return out
}
