package value

import (
	"math/big"
	"strings"

	"github.com/leo-core/leoc/internal/field"
	"github.com/leo-core/leoc/internal/types"
)

// ParseDigits parses a decimal/0x/0o/0b digit string with underscores
// permitted (spec §4.1, §6.3), returning the magnitude as a big.Int. A
// leading '-' is accepted and folded into the sign of the returned value;
// the caller is responsible for range-checking against a target kind.
func ParseDigits(text string) (*big.Int, error) {
	s := strings.ReplaceAll(text, "_", "")
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O"):
		base, s = 8, s[2:]
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		base, s = 2, s[2:]
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fault("parse", "invalid digit sequence %q", text)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// HasHexOrBinPrefix reports whether text is written in hex (0x/0X) or
// binary (0b/0B) radix syntax, ignoring a leading '-' (spec §6.3: integer
// literals may use 0x/0o/0b radix prefixes; field/group/scalar/boolean
// literals may not).
func HasHexOrBinPrefix(text string) bool {
	s := strings.TrimPrefix(text, "-")
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") ||
		strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B")
}

// ParseLiteral parses text as a literal of the given concrete type (spec
// §4.1 "parse-literal-of-type"). t must not be Numeric: resolving an
// unsuffixed literal is ResolveUnsuffixed's job.
func ParseLiteral(text string, t types.Type) (Value, error) {
	if kind, ok := integerKindOf(t); ok {
		n, err := ParseDigits(text)
		if err != nil {
			return nil, err
		}
		min, max := Bounds(kind)
		if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
			return nil, fault("parse", "literal %s out of range for %s", text, kind)
		}
		return newInt(kind, n), nil
	}
	switch t {
	case types.Field:
		e, err := parseFieldLike(text)
		if err != nil {
			return nil, err
		}
		return Field{E: field.NewField(e)}, nil
	case types.Scalar:
		e, err := parseFieldLike(text)
		if err != nil {
			return nil, err
		}
		return Scalar{E: field.NewScalar(e)}, nil
	case types.Group:
		e, err := parseFieldLike(text)
		if err != nil {
			return nil, err
		}
		gen := field.DefaultCurve.Generator()
		p := field.DefaultCurve.ScalarMul(gen, field.NewScalar(e))
		return Group{P: p, Curve: field.DefaultCurve}, nil
	case types.Boolean:
		switch text {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return nil, fault("parse", "invalid boolean literal %q", text)
	case types.String:
		return Str(text), nil
	}
	return nil, fault("parse", "cannot parse a literal of type %s", t)
}

// parseFieldLike strips a leading '-' and leading zeros before delegating
// to the shared digit parser (spec §4.1 "For field/group/scalar, strip a
// leading '-' and leading zeros before delegating to the library's
// parser").
func parseFieldLike(text string) (*big.Int, error) {
	s := text
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
	}
	if neg {
		s = "-" + s
	}
	return ParseDigits(s)
}

func integerKindOf(t types.Type) (types.IntegerKind, bool) {
	if it, ok := t.(types.Integer); ok {
		return types.IntegerKind{Width: it.Width, Signedness: it.Signedness}, true
	}
	return types.IntegerKind{}, false
}

// ResolveUnsuffixed implements spec §4.1's "resolve-if-unsuffixed": if v is
// an Unsuffixed literal and t is a type it can be parsed as (any integer
// width, Field, Group or Scalar), parse it in the appropriate radix and
// return the typed Value; otherwise v is returned unchanged.
func ResolveUnsuffixed(v Value, t types.Type) (Value, error) {
	u, ok := v.(Unsuffixed)
	if !ok {
		return v, nil
	}
	if _, ok := integerKindOf(t); ok {
		return ParseLiteral(u.Text, t)
	}
	switch t {
	case types.Field, types.Group, types.Scalar:
		return ParseLiteral(u.Text, t)
	}
	return v, nil
}
