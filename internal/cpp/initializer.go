package cpp

import "strings"

// Field is one designated member of a struct initializer.
type Field struct {
	Name  string
	Value Expression
}

// F pairs a member name with a value; plain Go values are wrapped with Lit.
func F(name string, value any) Field {
	return Field{Name: name, Value: Lit(value)}
}

// StructInitializer renders as
//
//	T{
//	  .a = 1,
//	  .b = 2,
//	}
type StructInitializer struct {
	Type   Type
	Fields []Field
}

// StructInit builds a designated initializer. Fields with a nil value are
// left out so optional members can be passed unconditionally.
func StructInit(t Type, fields ...Field) *StructInitializer {
	kept := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		if l, ok := f.Value.(*Literal); ok && l.Value == nil {
			continue
		}
		kept = append(kept, f)
	}
	return &StructInitializer{Type: t, Fields: kept}
}

func (s *StructInitializer) render() (string, error) {
	t, err := Render(s.Type)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(t)
	sb.WriteString("{\n")
	for _, f := range s.Fields {
		v, err := Render(f.Value)
		if err != nil {
			return "", err
		}
		sb.WriteString("  ." + f.Name + " = " + v + ",\n")
	}
	sb.WriteString("}")
	return sb.String(), nil
}

// ArrayInitializer renders as `{a, b}` or, when Multiline is set, one
// element per line.
type ArrayInitializer struct {
	Elems     []Expression
	Multiline bool
}

// ArrayInit builds a single-line brace initializer.
func ArrayInit(elems ...Expression) *ArrayInitializer {
	return &ArrayInitializer{Elems: elems}
}

// MultilineArrayInit builds a brace initializer with one element per line.
func MultilineArrayInit(elems ...Expression) *ArrayInitializer {
	return &ArrayInitializer{Elems: elems, Multiline: true}
}

func (a *ArrayInitializer) render() (string, error) {
	if len(a.Elems) == 0 {
		return "{}", nil
	}
	if !a.Multiline {
		inner, err := renderAll(a.Elems, ", ")
		if err != nil {
			return "", err
		}
		return "{" + inner + "}", nil
	}
	inner, err := renderAll(a.Elems, ",\n  ")
	if err != nil {
		return "", err
	}
	return "{\n  " + inner + ",\n}", nil
}
