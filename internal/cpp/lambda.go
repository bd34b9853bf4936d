package cpp

import "strings"

// Param is one lambda parameter.
type Param struct {
	Type Type
	Name string
}

// LambdaExpression renders as
//
//	[capture](T x) -> R {
//	  body
//	}
//
// Body is a sequence of fragments so that referenced handles render by name.
type LambdaExpression struct {
	Capture string
	Params  []Param
	Return  Type
	Body    []Expression
}

func (l *LambdaExpression) render() (string, error) {
	params := make([]string, 0, len(l.Params))
	for _, p := range l.Params {
		s, err := declarator(p.Type, p.Name)
		if err != nil {
			return "", err
		}
		params = append(params, s)
	}
	var sb strings.Builder
	sb.WriteString("[" + l.Capture + "](" + strings.Join(params, ", ") + ")")
	if l.Return != nil {
		r, err := Render(l.Return)
		if err != nil {
			return "", err
		}
		sb.WriteString(" -> " + r)
	}
	sb.WriteString(" {\n")
	body, err := renderAll(l.Body, "")
	if err != nil {
		return "", err
	}
	sb.WriteString(body)
	sb.WriteString("\n}")
	return sb.String(), nil
}
