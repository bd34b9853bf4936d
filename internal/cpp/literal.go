package cpp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/specialistvlad/firmgen/internal/errors"
)

// Literal wraps a Go value whose conversion to C++ happens at render time.
// Values without a C++ representation fail there with ErrUnrenderableValue.
type Literal struct {
	Value any
}

// Lit wraps a Go value for use inside an expression tree.
func Lit(v any) Expression {
	if e, ok := v.(Expression); ok {
		return e
	}
	return &Literal{Value: v}
}

// Lits wraps each value with Lit.
func Lits(values ...any) []Expression {
	out := make([]Expression, len(values))
	for i, v := range values {
		out[i] = Lit(v)
	}
	return out
}

func (l *Literal) render() (string, error) {
	e, err := SafeExp(l.Value)
	if err != nil {
		return "", err
	}
	return e.render()
}

// SafeExp converts a Go value into a literal expression eagerly.
func SafeExp(v any) (Expression, error) {
	switch x := v.(type) {
	case nil:
		return Nullptr, nil
	case Expression:
		return x, nil
	case bool:
		return boolLiteral(x), nil
	case int:
		return intLiteral(int64(x)), nil
	case int8:
		return intLiteral(int64(x)), nil
	case int16:
		return intLiteral(int64(x)), nil
	case int32:
		return intLiteral(int64(x)), nil
	case int64:
		return intLiteral(x), nil
	case uint:
		return uintLiteral(uint64(x)), nil
	case uint8:
		return uintLiteral(uint64(x)), nil
	case uint16:
		return uintLiteral(uint64(x)), nil
	case uint32:
		return uintLiteral(uint64(x)), nil
	case uint64:
		return uintLiteral(x), nil
	case float32:
		return floatLiteral{v: float64(x), bits: 32}, nil
	case float64:
		return floatLiteral{v: x, bits: 64}, nil
	case string:
		return stringLiteral(x), nil
	case time.Duration:
		if x < 0 {
			return nil, errors.Wrapf(errors.ErrUnrenderableValue, "negative duration %s", x)
		}
		return uintLiteral(uint64(x.Milliseconds())), nil
	case []Expression:
		return ArrayInit(x...), nil
	case []any:
		return sliceLiteral(x)
	case []string:
		return sliceLiteral(toAny(x))
	case []int:
		return sliceLiteral(toAny(x))
	case []float64:
		return sliceLiteral(toAny(x))
	case []bool:
		return sliceLiteral(toAny(x))
	case []byte:
		elems := make([]Expression, len(x))
		for i, b := range x {
			elems[i] = Hex(uint64(b))
		}
		return ArrayInit(elems...), nil
	}
	return nil, errors.Wrapf(errors.ErrUnrenderableValue, "no C++ representation for %T value %v", v, v)
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func sliceLiteral(values []any) (Expression, error) {
	elems := make([]Expression, 0, len(values))
	for _, v := range values {
		e, err := SafeExp(v)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return ArrayInit(elems...), nil
}

// Nullptr is the C++ null pointer literal.
var Nullptr = Raw("nullptr")

type boolLiteral bool

func (b boolLiteral) render() (string, error) {
	if b {
		return "true", nil
	}
	return "false", nil
}

type intLiteral int64

// Large magnitudes get a suffix so the constant keeps its value on 32-bit targets.
func (i intLiteral) render() (string, error) {
	v := int64(i)
	switch {
	case v > math.MaxUint32:
		return strconv.FormatInt(v, 10) + "ULL", nil
	case v > math.MaxInt32:
		return strconv.FormatInt(v, 10) + "UL", nil
	case v < math.MinInt32:
		return strconv.FormatInt(v, 10) + "LL", nil
	}
	return strconv.FormatInt(v, 10), nil
}

type uintLiteral uint64

func (u uintLiteral) render() (string, error) {
	v := uint64(u)
	switch {
	case v > math.MaxUint32:
		return strconv.FormatUint(v, 10) + "ULL", nil
	case v > math.MaxInt32:
		return strconv.FormatUint(v, 10) + "UL", nil
	}
	return strconv.FormatUint(v, 10), nil
}

// floatLiteral keeps the width of its source so float32 values print
// their shortest float32 form.
type floatLiteral struct {
	v    float64
	bits int
}

func (f floatLiteral) render() (string, error) {
	v := f.v
	switch {
	case math.IsNaN(v):
		return "NAN", nil
	case math.IsInf(v, 1):
		return "INFINITY", nil
	case math.IsInf(v, -1):
		return "-INFINITY", nil
	}
	s := strconv.FormatFloat(v, 'g', -1, f.bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s + "f", nil
}

type stringLiteral string

func (s stringLiteral) render() (string, error) {
	return EscapeString(string(s)), nil
}

// EscapeString quotes s as a C++ string literal. Bytes outside printable
// ASCII, quotes and backslashes are written as three-digit octal escapes.
func EscapeString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 32 || c >= 127 || c == '\\' || c == '"' {
			fmt.Fprintf(&sb, "\\%03o", c)
			continue
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}

// HexLiteral renders an unsigned integer in hex, e.g. `0x76`.
type HexLiteral uint64

// Hex builds a hex integer literal.
func Hex(v uint64) HexLiteral { return HexLiteral(v) }

func (h HexLiteral) render() (string, error) {
	return fmt.Sprintf("0x%02X", uint64(h)), nil
}
