// Package cpp models C++ expressions, statements and types as immutable data.
//
// Nothing in this package writes files or keeps state: every node renders to
// source text through a pure function of its fields, so rendering the same
// tree twice always yields byte-identical text. Nodes are built with the
// constructor functions (Lit, Raw, Call, StructInit, ...) or fluently from a
// Handle or Ref.
package cpp

import (
	"strings"
)

// Expression is a value-producing fragment of C++ source.
type Expression interface {
	render() (string, error)
}

// Render returns the C++ source text for an expression.
func Render(e Expression) (string, error) {
	if e == nil {
		return "", nil
	}
	return e.render()
}

// MustRender is Render for trees known to contain only renderable literals.
// It panics otherwise, so it belongs in tests and static tables.
func MustRender(e Expression) string {
	s, err := Render(e)
	if err != nil {
		panic(err)
	}
	return s
}

// renderAll renders a list of expressions and joins them with sep.
func renderAll(exprs []Expression, sep string) (string, error) {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		s, err := Render(e)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

// RawExpression is C++ text inserted verbatim.
type RawExpression struct {
	Text string
}

// Raw wraps literal C++ text as an expression.
func Raw(text string) *RawExpression {
	return &RawExpression{Text: text}
}

func (r *RawExpression) render() (string, error) { return r.Text, nil }

// TemplateArguments renders as `<a, b>`.
type TemplateArguments struct {
	Args []Expression
}

// TemplateArgs builds a template argument list from types or expressions.
func TemplateArgs(args ...Expression) *TemplateArguments {
	return &TemplateArguments{Args: args}
}

func (t *TemplateArguments) render() (string, error) {
	inner, err := renderAll(t.Args, ", ")
	if err != nil {
		return "", err
	}
	return "<" + inner + ">", nil
}

// CallExpression renders as `base<template>(args)`.
type CallExpression struct {
	Base     Expression
	Template *TemplateArguments
	Args     []Expression
}

// Call builds a call of base with the given arguments.
func Call(base Expression, args ...Expression) *CallExpression {
	return &CallExpression{Base: base, Args: args}
}

func (c *CallExpression) render() (string, error) {
	base, err := Render(c.Base)
	if err != nil {
		return "", err
	}
	tmpl := ""
	if c.Template != nil {
		if tmpl, err = c.Template.render(); err != nil {
			return "", err
		}
	}
	args, err := renderAll(c.Args, ", ")
	if err != nil {
		return "", err
	}
	return base + tmpl + "(" + args + ")", nil
}

// MemberExpression renders as `base.name`, `base->name` or `base::name`.
type MemberExpression struct {
	Base Expression
	Op   string
	Name string
}

func (m *MemberExpression) render() (string, error) {
	base, err := Render(m.Base)
	if err != nil {
		return "", err
	}
	if base == "" && m.Op == "::" {
		return m.Name, nil
	}
	return base + m.Op + m.Name, nil
}

// IndexExpression renders as `base[index]`.
type IndexExpression struct {
	Base  Expression
	Index Expression
}

func (i *IndexExpression) render() (string, error) {
	base, err := Render(i.Base)
	if err != nil {
		return "", err
	}
	idx, err := Render(i.Index)
	if err != nil {
		return "", err
	}
	return base + "[" + idx + "]", nil
}

// UnaryExpression renders as `op operand`, e.g. `*sensor` or `!(a && b)`.
type UnaryExpression struct {
	Op      string
	Operand Expression
}

// Unary builds a prefix operator expression.
func Unary(op string, operand Expression) *UnaryExpression {
	return &UnaryExpression{Op: op, Operand: operand}
}

func (u *UnaryExpression) render() (string, error) {
	s, err := Render(u.Operand)
	if err != nil {
		return "", err
	}
	if needsParens(u.Operand) {
		s = "(" + s + ")"
	}
	return u.Op + s, nil
}

// BinaryExpression renders as `lhs op rhs`; nested operator expressions are
// parenthesised so precedence never depends on the reader.
type BinaryExpression struct {
	Op  string
	LHS Expression
	RHS Expression
}

// Binary builds an infix operator expression.
func Binary(op string, lhs, rhs Expression) *BinaryExpression {
	return &BinaryExpression{Op: op, LHS: lhs, RHS: rhs}
}

func (b *BinaryExpression) render() (string, error) {
	l, err := Render(b.LHS)
	if err != nil {
		return "", err
	}
	r, err := Render(b.RHS)
	if err != nil {
		return "", err
	}
	if needsParens(b.LHS) {
		l = "(" + l + ")"
	}
	if needsParens(b.RHS) {
		r = "(" + r + ")"
	}
	return l + " " + b.Op + " " + r, nil
}

// CastExpression renders as `static_cast<T>(value)`.
type CastExpression struct {
	Type  Type
	Value Expression
}

// Cast builds a static_cast of value to t.
func Cast(t Type, value Expression) *CastExpression {
	return &CastExpression{Type: t, Value: value}
}

func (c *CastExpression) render() (string, error) {
	t, err := Render(c.Type)
	if err != nil {
		return "", err
	}
	v, err := Render(c.Value)
	if err != nil {
		return "", err
	}
	return "static_cast<" + t + ">(" + v + ")", nil
}

// NewExpression renders as `new T(args)`.
type NewExpression struct {
	Type Type
	Args []Expression
}

// New builds a heap allocation of t.
func New(t Type, args ...Expression) *NewExpression {
	return &NewExpression{Type: t, Args: args}
}

func (n *NewExpression) render() (string, error) {
	t, err := Render(n.Type)
	if err != nil {
		return "", err
	}
	args, err := renderAll(n.Args, ", ")
	if err != nil {
		return "", err
	}
	return "new " + t + "(" + args + ")", nil
}

func needsParens(e Expression) bool {
	switch v := e.(type) {
	case *BinaryExpression, *UnaryExpression:
		return true
	case Ref:
		return needsParens(v.expr)
	}
	return false
}
