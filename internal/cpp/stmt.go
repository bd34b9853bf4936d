package cpp

import (
	"strconv"
	"strings"
)

// Statement is a complete line (or block) of C++ source.
type Statement interface {
	renderStatement() (string, error)
}

// RenderStatement returns the C++ source text for a statement.
func RenderStatement(s Statement) (string, error) {
	return s.renderStatement()
}

// ExprStatement renders an expression followed by `;`.
type ExprStatement struct {
	Expr Expression
}

// Stmt turns an expression into a statement.
func Stmt(e Expression) *ExprStatement { return &ExprStatement{Expr: e} }

func (s *ExprStatement) renderStatement() (string, error) {
	e, err := Render(s.Expr)
	if err != nil {
		return "", err
	}
	return e + ";", nil
}

// RawStatement is C++ text inserted verbatim, with no `;` appended.
type RawStatement struct {
	Text string
}

// RawStmt wraps literal C++ text as a statement.
func RawStmt(text string) *RawStatement { return &RawStatement{Text: text} }

func (s *RawStatement) renderStatement() (string, error) { return s.Text, nil }

// LineComment renders each line of Text behind `// `.
type LineComment struct {
	Text string
}

// Comment builds a line comment.
func Comment(text string) *LineComment { return &LineComment{Text: text} }

func (c *LineComment) renderStatement() (string, error) {
	lines := strings.Split(c.Text, "\n")
	for i, l := range lines {
		lines[i] = "// " + l
	}
	return strings.Join(lines, "\n"), nil
}

// Declaration renders as `T name;` or `T name = value;`. Pointer and
// reference types attach to the name: `T *name`.
type Declaration struct {
	Type  Type
	Name  string
	Value Expression
}

// Declare builds a variable declaration. value may be nil.
func Declare(t Type, name string, value Expression) *Declaration {
	return &Declaration{Type: t, Name: name, Value: value}
}

func (d *Declaration) renderStatement() (string, error) {
	lhs, err := declarator(d.Type, d.Name)
	if err != nil {
		return "", err
	}
	if d.Value == nil {
		return lhs + ";", nil
	}
	v, err := Render(d.Value)
	if err != nil {
		return "", err
	}
	return lhs + " = " + v + ";", nil
}

func declarator(t Type, name string) (string, error) {
	ts, err := Render(t)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(ts, " *") || strings.HasSuffix(ts, " &") {
		return ts + name, nil
	}
	return ts + " " + name, nil
}

// Assignment renders as `target = value;`.
type Assignment struct {
	Target Expression
	Value  Expression
}

// Assign builds an assignment statement.
func Assign(target, value Expression) *Assignment {
	return &Assignment{Target: target, Value: value}
}

func (a *Assignment) renderStatement() (string, error) {
	t, err := Render(a.Target)
	if err != nil {
		return "", err
	}
	v, err := Render(a.Value)
	if err != nil {
		return "", err
	}
	return t + " = " + v + ";", nil
}

// ArrayDeclaration renders a `static const` array, optionally placed in
// flash with PROGMEM.
type ArrayDeclaration struct {
	Elem    Type
	Name    string
	Value   *ArrayInitializer
	Progmem bool
}

func (a *ArrayDeclaration) renderStatement() (string, error) {
	t, err := Render(a.Elem)
	if err != nil {
		return "", err
	}
	v, err := a.Value.render()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("static const " + t + " " + a.Name + "[" + strconv.Itoa(len(a.Value.Elems)) + "]")
	if a.Progmem {
		sb.WriteString(" PROGMEM")
	}
	sb.WriteString(" = " + v + ";")
	return sb.String(), nil
}

// Block renders statements inside braces, indented by two spaces.
type Block struct {
	Statements []Statement
}

func (b *Block) renderStatement() (string, error) {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		text, err := s.renderStatement()
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(text, "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}
	sb.WriteString("}")
	return sb.String(), nil
}
