package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/firmgen/internal/errors"
)

// Wait is one unsatisfied pending request left when the ready queue drained.
type Wait struct {
	Routine string
	ID      string
	// Producer is the routine expected to provide ID, or "" if none is known.
	Producer string
	// Blocked is true when Producer is itself suspended, i.e. part of a cycle
	// or waiting behind one.
	Blocked bool
}

// DependencyError reports every unsatisfied wait at once.
type DependencyError struct {
	Waits []Wait
}

func (e *DependencyError) Error() string {
	lines := make([]string, 0, len(e.Waits))
	for _, w := range e.Waits {
		switch {
		case w.Blocked:
			lines = append(lines, fmt.Sprintf("%q waits on id %q, provided by %q which is itself waiting (deadlock)", w.Routine, w.ID, w.Producer))
		case w.Producer != "":
			lines = append(lines, fmt.Sprintf("%q waits on id %q, which %q finished without declaring", w.Routine, w.ID, w.Producer))
		default:
			lines = append(lines, fmt.Sprintf("%q waits on id %q, which no block declares", w.Routine, w.ID))
		}
	}
	return "dependency resolution failed:\n- " + strings.Join(lines, "\n- ")
}

// Is matches ErrDependencyDeadlock and ErrUnresolvedReference according to
// the waits it carries.
func (e *DependencyError) Is(target error) bool {
	for _, w := range e.Waits {
		if w.Blocked && target == errors.ErrDependencyDeadlock {
			return true
		}
		if !w.Blocked && target == errors.ErrUnresolvedReference {
			return true
		}
	}
	return false
}

// IDs returns every unsatisfied id, sorted and without duplicates.
func (e *DependencyError) IDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, w := range e.Waits {
		if !seen[w.ID] {
			seen[w.ID] = true
			ids = append(ids, w.ID)
		}
	}
	sort.Strings(ids)
	return ids
}
