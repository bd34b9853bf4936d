package codegen

import (
	"context"
	"regexp"
	"strings"

	"github.com/specialistvlad/firmgen/internal/cpp"
)

// LambdaPrefix marks a config string as C++ lambda source rather than a
// literal value.
const LambdaPrefix = "!lambda "

// idRefRegex matches `id(name)` references inside lambda source, capturing
// a directly following `.` so pointer handles can switch to `->`.
var idRefRegex = regexp.MustCompile(`\bid\(\s*([A-Za-z_][A-Za-z0-9_]*)\s*\)(\.)?`)

// IsLambda reports whether a config string carries lambda source.
func IsLambda(s string) bool { return strings.HasPrefix(s, LambdaPrefix) }

// LambdaSource strips LambdaPrefix.
func LambdaSource(s string) string { return strings.TrimPrefix(s, LambdaPrefix) }

// ProcessLambda turns lambda source into a lambda expression. Every
// `id(x)` reference waits for x to be declared and is replaced by its
// handle; `id(x).member` on a pointer handle becomes `x->member`.
func (c *Context) ProcessLambda(ctx context.Context, src string, params []cpp.Param, capture string, ret cpp.Type) (*cpp.LambdaExpression, error) {
	src = LambdaSource(src)
	var body []cpp.Expression
	last := 0
	for _, m := range idRefRegex.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		h, err := c.Get(ctx, name, nil)
		if err != nil {
			return nil, err
		}
		body = append(body, cpp.Raw(src[last:m[0]]), h)
		if m[4] >= 0 {
			if h.Pointer {
				body = append(body, cpp.Raw("->"))
			} else {
				body = append(body, cpp.Raw("."))
			}
		}
		last = m[1]
	}
	body = append(body, cpp.Raw(src[last:]))
	return &cpp.LambdaExpression{Capture: capture, Params: params, Return: ret, Body: body}, nil
}

// Templatable returns a lambda for lambda strings and a literal for anything
// else.
func (c *Context) Templatable(ctx context.Context, value any, params []cpp.Param, ret cpp.Type) (cpp.Expression, error) {
	if s, ok := value.(string); ok && IsLambda(s) {
		return c.ProcessLambda(ctx, s, params, "=", ret)
	}
	return cpp.SafeExp(value)
}
