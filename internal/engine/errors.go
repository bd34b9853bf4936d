package engine

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/firmgen/internal/scheduler"
)

// BlockError is a failure attributed to a single block.
type BlockError struct {
	Block string
	Range hcl.Range
	State scheduler.State
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s (%s) %s: %v", e.Block, e.Range, e.State, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// PassError is the aggregated report of a failed pass.
type PassError struct {
	PassID string
	// Fatal holds the errors that cancelled the pass: unknown kinds, global
	// conflicts and unsatisfied references.
	Fatal []error
	// Blocks holds blocks that failed on their own.
	Blocks []*BlockError
	// Skipped holds blocks that waited on a failed block.
	Skipped []*BlockError
	// Diagnostics holds the schema decoding diagnostics of every block.
	Diagnostics hcl.Diagnostics
}

func (e *PassError) Error() string {
	var lines []string
	for _, err := range e.Fatal {
		lines = append(lines, err.Error())
	}
	for _, be := range e.Blocks {
		lines = append(lines, be.Error())
	}
	for _, be := range e.Skipped {
		lines = append(lines, be.Error())
	}
	return fmt.Sprintf("generation pass %s failed:\n- %s", e.PassID, strings.Join(lines, "\n- "))
}

// Unwrap exposes every collected error, so errors.Is matches any category.
func (e *PassError) Unwrap() []error {
	out := make([]error, 0, len(e.Fatal)+len(e.Blocks)+len(e.Skipped))
	out = append(out, e.Fatal...)
	for _, be := range e.Blocks {
		out = append(out, be)
	}
	for _, be := range e.Skipped {
		out = append(out, be)
	}
	return out
}

func (e *PassError) empty() bool {
	return len(e.Fatal) == 0 && len(e.Blocks) == 0 && len(e.Skipped) == 0
}
