package value

import "fmt"

// CanonicalText renders v using the bit-exact textual form of spec §6.3:
// for field/group/scalar, an optional leading '-', the digit sequence with
// leading zeros stripped (or a single '0'), then the type suffix;
// underscores are never present because Value no longer carries literal
// source text. Integer literals are always rendered as decimal.
func CanonicalText(v Value) string {
	switch tv := v.(type) {
	case Int:
		return fmt.Sprintf("%s%s", tv.signedDecimal().String(), tv.Kind)
	case Field:
		return canonicalDigits(tv.E.BigInt().String()) + "field"
	case Scalar:
		return canonicalDigits(tv.E.BigInt().String()) + "scalar"
	case Group:
		if tv.P.Infinity {
			return "0group"
		}
		return canonicalDigits(tv.P.X.BigInt().String()) + "group"
	default:
		return v.String()
	}
}

// canonicalDigits strips leading zeros from a decimal digit string
// (preserving a leading '-'), collapsing an all-zero mantissa to "0".
func canonicalDigits(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	s = s[i:]
	if neg && s != "0" {
		return "-" + s
	}
	return s
}
