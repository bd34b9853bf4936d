// Package errors provides error handling for firmgen.
//
// It re-exports github.com/cockroachdb/errors so that every package wraps,
// annotates and inspects errors the same way, and it defines the sentinel
// errors that make up the generation error taxonomy.
//
// Usage:
//
//	// Wrap a sentinel with context; errors.Is still matches it.
//	return errors.Wrapf(errors.ErrUnknownDiscriminator, "block %q", kind)
//
//	// Add a hint for the operator.
//	return errors.WithHint(err, "declare the referenced id in another block")
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Generation error taxonomy. Wrap these to add context; errors.Is keeps
// matching the category.
var (
	// ErrUnrenderableValue means a literal has no C++ representation. It is
	// local to one block.
	ErrUnrenderableValue = New("unrenderable value")

	// ErrUnknownDiscriminator means no registry layer has an entry for a
	// block kind. It aborts the pass.
	ErrUnknownDiscriminator = New("unknown discriminator")

	// ErrUnresolvedReference means a routine waits on an id that no live
	// routine will ever produce. It aborts the pass.
	ErrUnresolvedReference = New("unresolved reference")

	// ErrDependencyDeadlock means routines wait on each other in a cycle.
	// It aborts the pass.
	ErrDependencyDeadlock = New("dependency deadlock")

	// ErrConflictingGlobalDefinition means two routines disagree on the
	// payload stored under one global key. It aborts the pass.
	ErrConflictingGlobalDefinition = New("conflicting global definition")

	// ErrDuplicateID means two objects claim the same manual id or C++ name.
	ErrDuplicateID = New("duplicate id")

	// ErrTypeMismatch means a lookup asked for a type the bound handle does
	// not provide.
	ErrTypeMismatch = New("type mismatch")

	// ErrPassAborted is returned from suspension points once the pass has
	// been cancelled by a fatal error elsewhere.
	ErrPassAborted = New("generation pass aborted")

	// ErrInvalidConfig means a block failed schema decoding.
	ErrInvalidConfig = New("invalid configuration")
)

// IsFatal reports whether err belongs to a category that cancels the whole
// generation pass rather than only the block that produced it.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return Is(err, ErrUnknownDiscriminator) ||
		Is(err, ErrUnresolvedReference) ||
		Is(err, ErrDependencyDeadlock) ||
		Is(err, ErrConflictingGlobalDefinition)
}
