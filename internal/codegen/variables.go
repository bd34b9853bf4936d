package codegen

import (
	"github.com/specialistvlad/firmgen/internal/cfgid"
	"github.com/specialistvlad/firmgen/internal/cpp"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// declare allocates the C++ name for id and builds its handle.
func (c *Context) declare(id cfgid.ID, typ cpp.Type, pointer bool) (*cpp.Handle, error) {
	if typ == nil {
		return nil, errors.Newf("block %s: id %q has no type", c.block(), id.Name)
	}
	manual := id.Manual || c.pass.Symbols.IsReserved(id.Name)
	name, err := c.pass.Symbols.Allocate(id.Name, manual)
	if err != nil {
		return nil, err
	}
	return &cpp.Handle{Name: name, Type: typ, Pointer: pointer, Owner: id.Name}, nil
}

// bind publishes h under id and wakes every routine waiting for it.
func (c *Context) bind(id cfgid.ID, h *cpp.Handle) error {
	if err := c.pass.Symbols.Bind(id.Name, h); err != nil {
		return err
	}
	c.pass.ids[id.Name] = id.WithType(h.Type)
	c.pass.Scheduler.Resolve(id.Name)
	return nil
}

// Variable declares `T name = rhs;` in the setup body and binds id to it.
// typ overrides id.Type when non-nil.
func (c *Context) Variable(id cfgid.ID, rhs cpp.Expression, typ cpp.Type) (*cpp.Handle, error) {
	if typ == nil {
		typ = id.Type
	}
	h, err := c.declare(id, typ, false)
	if err != nil {
		return nil, err
	}
	if err := c.AddStatement(cpp.Declare(typ, h.Name, rhs)); err != nil {
		return nil, err
	}
	return h, c.bind(id, h)
}

// Pvariable declares a global pointer `T *name;`, assigns rhs to it in the
// setup body and binds id to it.
func (c *Context) Pvariable(id cfgid.ID, rhs cpp.Expression, typ cpp.Type) (*cpp.Handle, error) {
	if typ == nil {
		typ = id.Type
	}
	h, err := c.declare(id, typ, true)
	if err != nil {
		return nil, err
	}
	if err := c.pass.Globals.AddDeclaration(h.Name, cpp.Declare(cpp.Pointer(typ), h.Name, nil)); err != nil {
		return nil, err
	}
	if err := c.AddStatement(cpp.Assign(h, rhs)); err != nil {
		return nil, err
	}
	return h, c.bind(id, h)
}

// NewPvariable heap-allocates id.Type with args and binds id to the pointer.
func (c *Context) NewPvariable(id cfgid.ID, args ...any) (*cpp.Handle, error) {
	if id.Type == nil {
		return nil, errors.Newf("block %s: id %q has no type", c.block(), id.Name)
	}
	return c.Pvariable(id, cpp.New(id.Type, cpp.Lits(args...)...), nil)
}

// ProgmemArray declares a flash-resident `static const T name[] PROGMEM`
// array in the global section and binds id to it.
func (c *Context) ProgmemArray(id cfgid.ID, values *cpp.ArrayInitializer) (*cpp.Handle, error) {
	return c.constArray(id, values, true)
}

// StaticConstArray declares a `static const T name[]` array in the global
// section and binds id to it.
func (c *Context) StaticConstArray(id cfgid.ID, values *cpp.ArrayInitializer) (*cpp.Handle, error) {
	return c.constArray(id, values, false)
}

func (c *Context) constArray(id cfgid.ID, values *cpp.ArrayInitializer, progmem bool) (*cpp.Handle, error) {
	h, err := c.declare(id, id.Type, false)
	if err != nil {
		return nil, err
	}
	decl := &cpp.ArrayDeclaration{Elem: id.Type, Name: h.Name, Value: values, Progmem: progmem}
	if err := c.pass.Globals.AddDeclaration(h.Name, decl); err != nil {
		return nil, err
	}
	return h, c.bind(id, h)
}

// WithLocalVariable emits `{ T name = rhs; ... }` with the statements fn adds
// inside the braces. The variable is not bound to id, and fn must not wait
// for other ids.
func (c *Context) WithLocalVariable(id cfgid.ID, rhs cpp.Expression, fn func(h *cpp.Handle) error) error {
	h, err := c.declare(id, id.Type, false)
	if err != nil {
		return err
	}
	if err := c.AddStatement(cpp.RawStmt("{")); err != nil {
		return err
	}
	if err := c.AddStatement(cpp.Declare(id.Type, h.Name, rhs)); err != nil {
		return err
	}
	c.local++
	err = fn(h)
	c.local--
	if err != nil {
		return err
	}
	return c.AddStatement(cpp.RawStmt("}"))
}
