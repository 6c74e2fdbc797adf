// Package value implements the typed-value model of spec §4.1: a single
// Value sum with arithmetic methods dispatching on the inner variant
// (spec §9 design note), shared by the type checker's constant folding and
// by any local-execution interpreter (spec §1: "the interpreter ... shares
// the value module").
package value

import (
	"fmt"
	"math/big"

	"github.com/leo-core/leoc/internal/field"
	"github.com/leo-core/leoc/internal/types"
)

// Value is the sum of every runtime/constant value shape (spec §3, §4.1).
type Value interface {
	Type() types.Type
	String() string
	valueNode()
}

// Bool is a Boolean value.
type Bool bool

func (Bool) valueNode()        {}
func (Bool) Type() types.Type  { return types.Boolean }
func (b Bool) String() string  { return fmt.Sprintf("%t", bool(b)) }

// Int is a fixed-width signed or unsigned integer value. Magnitude is
// always stored as the two's-complement bit pattern's unsigned big.Int
// representation masked to Width bits, so wrapping arithmetic is a mask
// and checked arithmetic is a range comparison against Bounds.
type Int struct {
	Kind types.IntegerKind
	Mag  *big.Int // unsigned bit pattern, 0 <= Mag < 2^Width
}

func (Int) valueNode()       {}
func (i Int) Type() types.Type { return types.NewInteger(i.Kind) }

func (i Int) String() string {
	return fmt.Sprintf("%s%s", i.signedDecimal().String(), i.Kind)
}

// signedDecimal interprets Mag as the two's-complement value it encodes.
func (i Int) signedDecimal() *big.Int {
	if i.Kind.Signedness == types.Unsigned {
		return new(big.Int).Set(i.Mag)
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(i.Kind.Width-1))
	if i.Mag.Cmp(half) < 0 {
		return new(big.Int).Set(i.Mag)
	}
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(i.Kind.Width))
	return new(big.Int).Sub(i.Mag, modulus)
}

// Field is a finite-field element.
type Field struct{ E field.Elem }

func (Field) valueNode()        {}
func (Field) Type() types.Type  { return types.Field }
func (f Field) String() string  { return f.E.String() + "field" }

// Scalar is a scalar-field element.
type Scalar struct{ E field.Elem }

func (Scalar) valueNode()        {}
func (Scalar) Type() types.Type  { return types.Scalar }
func (s Scalar) String() string  { return s.E.String() + "scalar" }

// Group is a curve point.
type Group struct {
	P     field.Point
	Curve field.Curve
}

func (Group) valueNode()       {}
func (Group) Type() types.Type { return types.Group }
func (g Group) String() string {
	if g.P.Infinity {
		return "0group"
	}
	return g.P.X.String() + "group"
}

// Address is a bech32-style account or program address; spec treats its
// format as opaque to the core beyond equality, so it's a string wrapper.
type Address string

func (Address) valueNode()       {}
func (Address) Type() types.Type { return types.Address }
func (a Address) String() string { return string(a) }

// Signature is an opaque serialized signature.
type Signature string

func (Signature) valueNode()       {}
func (Signature) Type() types.Type { return types.Signature }
func (s Signature) String() string { return string(s) }

// Str is a string literal value.
type Str string

func (Str) valueNode()       {}
func (Str) Type() types.Type { return types.String }
func (s Str) String() string { return fmt.Sprintf("%q", string(s)) }

// Unit is the sole value of Unit type.
type Unit struct{}

func (Unit) valueNode()       {}
func (Unit) Type() types.Type { return types.Unit }
func (Unit) String() string   { return "()" }

// Unsuffixed is an integer literal string with no type suffix (spec §3.4:
// LiteralVariant::Unsuffixed). It is resolved to a concrete typed Value at
// its first typing context (spec §4.1 "resolve-if-unsuffixed").
type Unsuffixed struct{ Text string }

func (Unsuffixed) valueNode()       {}
func (Unsuffixed) Type() types.Type { return types.Numeric }
func (u Unsuffixed) String() string { return u.Text }

// Array is a fixed-length array value.
type Array struct {
	Elems []Value
	Elem  types.Type
}

func (Array) valueNode() {}
func (a Array) Type() types.Type {
	return types.Array{Elem: a.Elem, Length: types.ConstLength{Value: int64(len(a.Elems))}}
}
func (a Array) String() string {
	s := "["
	for i, e := range a.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// Tuple is a product of two or more values.
type Tuple struct{ Elems []Value }

func (Tuple) valueNode() {}
func (t Tuple) Type() types.Type {
	ts := make([]types.Type, len(t.Elems))
	for i, e := range t.Elems {
		ts[i] = e.Type()
	}
	return types.Tuple{Elems: ts}
}
func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// Composite is a struct or record value: an ordered list of field values in
// canonical (definition) order (spec §4.2 "canonical order is taken from
// the definition").
type Composite struct {
	Ty     types.Composite
	Fields []string
	Values []Value
}

func (Composite) valueNode()       {}
func (c Composite) Type() types.Type { return c.Ty }
func (c Composite) String() string {
	s := c.Ty.Name + " { "
	for i, f := range c.Fields {
		if i > 0 {
			s += ", "
		}
		s += f + ": " + c.Values[i].String()
	}
	return s + " }"
}

// Optional wraps a present-or-absent value of some inner type.
type Optional struct {
	Inner Type_ // avoids an import cycle name clash with types.Optional
	Value Value // nil when absent ("none")
}

// Type_ is a thin alias so Optional's doc above reads naturally; it is
// exactly types.Type.
type Type_ = types.Type

func (Optional) valueNode() {}
func (o Optional) Type() types.Type { return types.Optional{Inner: o.Inner} }
func (o Optional) String() string {
	if o.Value == nil {
		return "none"
	}
	return o.Value.String()
}

// Equal implements value equality (spec §4.1). Integers compare by Kind
// and Mag; floats-as-fields compare via field.Elem.Equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av.Kind == bv.Kind && av.Mag.Cmp(bv.Mag) == 0
	case Field:
		bv, ok := b.(Field)
		return ok && av.E.Equal(bv.E)
	case Scalar:
		bv, ok := b.(Scalar)
		return ok && av.E.Equal(bv.E)
	case Group:
		bv, ok := b.(Group)
		return ok && av.Curve.Equal(av.P, bv.P)
	case Address:
		bv, ok := b.(Address)
		return ok && av == bv
	case Signature:
		bv, ok := b.(Signature)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Unit:
		_, ok := b.(Unit)
		return ok
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case Composite:
		bv, ok := b.(Composite)
		if !ok || !types.Equal(av.Ty, bv.Ty) || len(av.Values) != len(bv.Values) {
			return false
		}
		for i := range av.Values {
			if !Equal(av.Values[i], bv.Values[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare implements the ordered comparisons of spec §4.1 (<, <=, >, >=),
// defined for integers, fields and scalars. It panics for any other type;
// callers (the type checker) must only invoke it after confirming the
// operand types are comparable.
func Compare(a, b Value) int {
	switch av := a.(type) {
	case Int:
		bv := b.(Int)
		return av.signedDecimal().Cmp(bv.signedDecimal())
	case Field:
		return av.E.Cmp(b.(Field).E)
	case Scalar:
		return av.E.Cmp(b.(Scalar).E)
	default:
		panic(fmt.Sprintf("value: comparison not defined for %T", a))
	}
}
