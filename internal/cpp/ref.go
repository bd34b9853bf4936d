package cpp

// Ref is a fluent wrapper around an expression. Each method returns a new Ref
// and leaves the receiver untouched, so partial chains can be shared.
//
//	cfg.Member("set_timeout").Call(4500)   // cfg->set_timeout(4500)
type Ref struct {
	expr    Expression
	pointer bool
}

// R starts a chain from any expression.
func R(e Expression) Ref { return Ref{expr: e} }

// PtrRef starts a chain from an expression of pointer type, so Member uses `->`.
func PtrRef(e Expression) Ref { return Ref{expr: e, pointer: true} }

func (r Ref) render() (string, error) { return Render(r.expr) }

// Expr returns the wrapped expression.
func (r Ref) Expr() Expression { return r.expr }

// IsPointer reports whether Member dereferences with `->`.
func (r Ref) IsPointer() bool { return r.pointer }

// Member accesses a member with `->` on pointers and `.` otherwise.
func (r Ref) Member(name string) Ref {
	op := "."
	if r.pointer {
		op = "->"
	}
	return Ref{expr: &MemberExpression{Base: r.expr, Op: op, Name: name}}
}

// Dot forces `.` member access.
func (r Ref) Dot(name string) Ref {
	return Ref{expr: &MemberExpression{Base: r.expr, Op: ".", Name: name}}
}

// Arrow forces `->` member access.
func (r Ref) Arrow(name string) Ref {
	return Ref{expr: &MemberExpression{Base: r.expr, Op: "->", Name: name}}
}

// Scope accesses a static member with `::`.
func (r Ref) Scope(name string) Ref {
	return Ref{expr: &MemberExpression{Base: r.expr, Op: "::", Name: name}}
}

// Call invokes the reference. Go values are wrapped with Lit.
func (r Ref) Call(args ...any) Ref {
	return Ref{expr: &CallExpression{Base: r.expr, Args: Lits(args...)}}
}

// CallT invokes a function template with explicit template arguments.
func (r Ref) CallT(tmpl []Expression, args ...any) Ref {
	return Ref{expr: &CallExpression{Base: r.expr, Template: TemplateArgs(tmpl...), Args: Lits(args...)}}
}

// Index subscripts the reference.
func (r Ref) Index(i any) Ref {
	return Ref{expr: &IndexExpression{Base: r.expr, Index: Lit(i)}}
}

// Cast wraps the reference in a static_cast.
func (r Ref) Cast(t Type) Ref {
	_, ptr := t.(*PointerType)
	return Ref{expr: Cast(t, r.expr), pointer: ptr}
}

// Deref renders `*ref`.
func (r Ref) Deref() Ref { return Ref{expr: Unary("*", r.expr)} }

// Addr renders `&ref`; the result is a pointer.
func (r Ref) Addr() Ref { return Ref{expr: Unary("&", r.expr), pointer: true} }

// Not renders `!ref`.
func (r Ref) Not() Ref { return Ref{expr: Unary("!", r.expr)} }

// Handle is the typed C++ identifier bound to one declared object. Owner is
// the config id that declared it, or "" for anonymous objects.
type Handle struct {
	Name    string
	Type    Type
	Pointer bool
	Owner   string
}

func (h *Handle) render() (string, error) { return h.Name, nil }

// Ref starts a fluent chain at the handle.
func (h *Handle) Ref() Ref { return Ref{expr: h, pointer: h.Pointer} }

// Member accesses a member of the bound object.
func (h *Handle) Member(name string) Ref { return h.Ref().Member(name) }

// Call invokes a method on the bound object.
func (h *Handle) Call(method string, args ...any) Ref {
	return h.Ref().Member(method).Call(args...)
}

// Index subscripts the bound object.
func (h *Handle) Index(i any) Ref { return h.Ref().Index(i) }

// Deref renders `*name`.
func (h *Handle) Deref() Ref { return h.Ref().Deref() }

// Addr renders `&name`.
func (h *Handle) Addr() Ref { return h.Ref().Addr() }
