// Package codegen is the API generators use to emit code: declaring
// variables, adding statements, looking up other blocks' variables and
// registering globals.
//
// A Pass owns the shared state of one generation run. Each routine gets its
// own Context bound to the scheduler coroutine it runs on, so lookups of ids
// that are not declared yet suspend only that routine.
package codegen

import (
	"github.com/specialistvlad/firmgen/internal/cfgid"
	"github.com/specialistvlad/firmgen/internal/globals"
	"github.com/specialistvlad/firmgen/internal/scheduler"
	"github.com/specialistvlad/firmgen/internal/symbol"
)

// Emitted is one statement of the setup body, already rendered.
type Emitted struct {
	// Block is the routine that emitted the statement.
	Block string
	Text  string
}

// Pass is the state shared by all routines of one generation run.
type Pass struct {
	ID        string
	Symbols   *symbol.Table
	Globals   *globals.Buffers
	Scheduler *scheduler.Scheduler

	ids        map[string]cfgid.ID
	statements []Emitted
}

// NewPass creates an empty pass. Global conflicts abort the scheduler.
func NewPass(id string) *Pass {
	p := &Pass{
		ID:        id,
		Symbols:   symbol.New(),
		Globals:   globals.New(),
		Scheduler: scheduler.New(),
		ids:       make(map[string]cfgid.ID),
	}
	p.Globals.OnConflict = p.Scheduler.Abort
	return p
}

// Statements returns the setup statements in emission order.
func (p *Pass) Statements() []Emitted {
	out := make([]Emitted, len(p.statements))
	copy(out, p.statements)
	return out
}

// NewContext creates the generation context for a routine running on co.
func (p *Pass) NewContext(co Awaiter, kind string, id cfgid.ID) *Context {
	return &Context{pass: p, co: co, kind: kind, id: id}
}
