package cpp

// Type is a C++ type. Types are expressions too, so they can appear as
// template arguments or in casts.
type Type interface {
	Expression
	isType()
}

// TypeName renders t, returning "" for a nil type.
func TypeName(t Type) string {
	if t == nil {
		return ""
	}
	s, _ := t.render()
	return s
}

// Primitive is a built-in or fully spelled-out type such as `uint32_t`.
type Primitive string

func (p Primitive) render() (string, error) { return string(p), nil }
func (Primitive) isType()                   {}

// Namespace is a C++ namespace. The zero-named root stands for the global
// scope; generated sources import esphome, so its members render unqualified.
type Namespace struct {
	Name   string
	Parent *Namespace
}

// Global is the root scope of generated code.
var Global = &Namespace{}

func (n *Namespace) render() (string, error) { return n.qualified(), nil }

func (n *Namespace) qualified() string {
	if n == nil || n.Name == "" {
		return ""
	}
	if p := n.Parent.qualified(); p != "" {
		return p + "::" + n.Name
	}
	return n.Name
}

func (n *Namespace) prefix() string {
	if q := n.qualified(); q != "" {
		return q + "::"
	}
	return ""
}

// Namespace returns a nested namespace.
func (n *Namespace) Namespace(name string) *Namespace {
	return &Namespace{Name: name, Parent: n}
}

// Class declares a class in n with the given direct parents.
func (n *Namespace) Class(name string, parents ...*Class) *Class {
	return &Class{Namespace: n, Name: name, Parents: parents}
}

// Struct declares a struct in n. Structs and classes differ only in spelling
// at declaration sites the generator never writes.
func (n *Namespace) Struct(name string) *Class {
	return &Class{Namespace: n, Name: name}
}

// Enum declares an enumeration in n. Scoped enums qualify their values with
// the enum name; plain enums qualify with the namespace only.
func (n *Namespace) Enum(name string, scoped bool) *Enum {
	return &Enum{Namespace: n, Name: name, Scoped: scoped}
}

// Ident refers to a free function or object declared in n.
func (n *Namespace) Ident(name string) Ref {
	return R(&MemberExpression{Base: n, Op: "::", Name: name})
}

// Class is a namespace-qualified class or struct.
type Class struct {
	Namespace *Namespace
	Name      string
	Parents   []*Class
}

func (c *Class) render() (string, error) { return c.Namespace.prefix() + c.Name, nil }
func (*Class) isType()                   {}

// Template instantiates a class template.
func (c *Class) Template(args ...Expression) *Templated {
	return &Templated{Base: c, Args: TemplateArgs(args...)}
}

// Static refers to a static member of c.
func (c *Class) Static(name string) Ref {
	return R(&MemberExpression{Base: c, Op: "::", Name: name})
}

// Enum is an enumeration type.
type Enum struct {
	Namespace *Namespace
	Name      string
	Scoped    bool
}

func (e *Enum) render() (string, error) { return e.Namespace.prefix() + e.Name, nil }
func (*Enum) isType()                   {}

// Value refers to one enumerator.
func (e *Enum) Value(name string) Ref {
	if e.Scoped {
		return R(&MemberExpression{Base: e, Op: "::", Name: name})
	}
	return R(Raw(e.Namespace.prefix() + name))
}

// Templated is a template instantiation such as `GlobalsComponent<int>`.
type Templated struct {
	Base Type
	Args *TemplateArguments
}

func (t *Templated) render() (string, error) {
	base, err := Render(t.Base)
	if err != nil {
		return "", err
	}
	args, err := t.Args.render()
	if err != nil {
		return "", err
	}
	return base + args, nil
}
func (*Templated) isType() {}

// PointerType renders as `T *`.
type PointerType struct{ Elem Type }

// Pointer wraps t as a pointer type.
func Pointer(t Type) *PointerType { return &PointerType{Elem: t} }

func (p *PointerType) render() (string, error) {
	s, err := Render(p.Elem)
	if err != nil {
		return "", err
	}
	return s + " *", nil
}
func (*PointerType) isType() {}

// ConstType renders as `const T`.
type ConstType struct{ Elem Type }

// Const wraps t as a const-qualified type.
func Const(t Type) *ConstType { return &ConstType{Elem: t} }

func (c *ConstType) render() (string, error) {
	s, err := Render(c.Elem)
	if err != nil {
		return "", err
	}
	return "const " + s, nil
}
func (*ConstType) isType() {}

// ReferenceType renders as `T &`.
type ReferenceType struct{ Elem Type }

// Reference wraps t as an lvalue reference type.
func Reference(t Type) *ReferenceType { return &ReferenceType{Elem: t} }

func (r *ReferenceType) render() (string, error) {
	s, err := Render(r.Elem)
	if err != nil {
		return "", err
	}
	return s + " &", nil
}
func (*ReferenceType) isType() {}

// Optional renders as `esphome::optional<T>`.
func Optional(t Type) *Templated {
	return &Templated{Base: Primitive("esphome::optional"), Args: TemplateArgs(t)}
}

// Inherits reports whether a value of type t can be used where want is
// expected. It compares spelled names and walks class parents; pointer,
// const and reference wrappers must match on both sides.
func Inherits(t, want Type) bool {
	if t == nil || want == nil {
		return t == want
	}
	if TypeName(t) == TypeName(want) {
		return true
	}
	switch tv := t.(type) {
	case *PointerType:
		if wv, ok := want.(*PointerType); ok {
			return Inherits(tv.Elem, wv.Elem)
		}
	case *ConstType:
		if wv, ok := want.(*ConstType); ok {
			return Inherits(tv.Elem, wv.Elem)
		}
		return Inherits(tv.Elem, want)
	case *ReferenceType:
		if wv, ok := want.(*ReferenceType); ok {
			return Inherits(tv.Elem, wv.Elem)
		}
	case *Class:
		for _, p := range tv.Parents {
			if Inherits(p, want) {
				return true
			}
		}
	case *Templated:
		if _, ok := want.(*Templated); !ok {
			return Inherits(tv.Base, want)
		}
	}
	return false
}
