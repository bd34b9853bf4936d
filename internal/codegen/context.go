package codegen

import (
	"context"
	"fmt"

	"github.com/specialistvlad/firmgen/internal/cfgid"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/errors"
	"github.com/specialistvlad/firmgen/internal/globals"
)

// Context is the generation API of one routine.
type Context struct {
	pass  *Pass
	co    Awaiter
	kind  string
	id    cfgid.ID
	local int // depth of WithLocalVariable scopes
}

// Awaiter is the part of a scheduler coroutine a Context needs.
type Awaiter interface {
	Name() string
	Await(id string) error
}

// ID returns the id of the block being generated.
func (c *Context) ID() cfgid.ID { return c.id }

// Kind returns the discriminator of the block being generated.
func (c *Context) Kind() string { return c.kind }

// Pass returns the pass the routine belongs to.
func (c *Context) Pass() *Pass { return c.pass }

func (c *Context) block() string {
	return c.co.Name()
}

// Add appends an expression statement to the setup body.
func (c *Context) Add(e cpp.Expression) error {
	return c.AddStatement(cpp.Stmt(e))
}

// AddStatement appends a statement to the setup body. The statement is
// rendered now, so an unrenderable literal fails here and not at output time.
func (c *Context) AddStatement(s cpp.Statement) error {
	text, err := cpp.RenderStatement(s)
	if err != nil {
		return errors.Wrapf(err, "block %s", c.block())
	}
	c.pass.statements = append(c.pass.statements, Emitted{Block: c.block(), Text: text})
	return nil
}

// AddGlobal adds a statement to the global section, deduplicated by its text.
func (c *Context) AddGlobal(s cpp.Statement) error {
	text, err := cpp.RenderStatement(s)
	if err != nil {
		return errors.Wrapf(err, "block %s", c.block())
	}
	return c.pass.Globals.AddDeclaration(text, s)
}

// AddLibrary adds a library requirement.
func (c *Context) AddLibrary(name, version, repository string) error {
	return c.pass.Globals.AddLibrary(globals.Library{Name: name, Version: version, Repository: repository})
}

// AddBuildFlag adds a compiler flag.
func (c *Context) AddBuildFlag(flag string) {
	c.pass.Globals.AddBuildFlag(flag)
}

// AddDefine adds a preprocessor definition. value is rendered as a C++
// literal; nil defines the bare name.
func (c *Context) AddDefine(name string, value any) error {
	text := ""
	if value != nil {
		e, err := cpp.SafeExp(value)
		if err != nil {
			return errors.Wrapf(err, "define %s", name)
		}
		if text, err = cpp.Render(e); err != nil {
			return errors.Wrapf(err, "define %s", name)
		}
	}
	return c.pass.Globals.AddDefine(name, text)
}

// AddPlatformOption adds a platform build option.
func (c *Context) AddPlatformOption(key string, value any) error {
	return c.pass.Globals.AddPlatformOption(key, fmt.Sprint(value))
}

// Get returns the handle declared for name, suspending the routine until
// some other routine declares it. A non-nil want must be satisfied by the
// declared type.
func (c *Context) Get(ctx context.Context, name string, want cpp.Type) (*cpp.Handle, error) {
	_, h, err := c.GetWithFullID(ctx, name)
	if err != nil {
		return nil, err
	}
	if want != nil && !cpp.Inherits(h.Type, want) {
		return nil, errors.Wrapf(errors.ErrTypeMismatch, "id %q is a %s, not a %s",
			name, cpp.TypeName(h.Type), cpp.TypeName(want))
	}
	return h, nil
}

// GetWithFullID is Get returning the id as it was declared.
func (c *Context) GetWithFullID(ctx context.Context, name string) (cfgid.ID, *cpp.Handle, error) {
	if h, ok := c.pass.Symbols.Lookup(name); ok {
		return c.pass.ids[name], h, nil
	}
	if c.local > 0 {
		return cfgid.ID{}, nil, errors.Newf("block %s: cannot wait for %q inside a local variable scope", c.block(), name)
	}

	ctxlog.FromContext(ctx).Debug("Waiting for id.", "block", c.block(), "id", name)
	if err := c.co.Await(name); err != nil {
		return cfgid.ID{}, nil, err
	}
	if h, ok := c.pass.Symbols.Lookup(name); ok {
		return c.pass.ids[name], h, nil
	}
	return cfgid.ID{}, nil, errors.Wrapf(errors.ErrUnresolvedReference, "id %q was resolved without a declared variable", name)
}
