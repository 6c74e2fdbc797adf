// Package field implements the finite-field and scalar-field arithmetic
// that spec §4.1 delegates to "the respective finite structures provided by
// the cryptographic library". No such library exists anywhere in the
// example corpus this module was grounded on, so this package provides:
//
//   - Elem, a real big.Int-backed prime-field element (field/scalar share
//     this implementation, parameterized by modulus), and
//   - a Curve interface for group arithmetic, so a real pairing-friendly
//     curve implementation can be substituted without touching
//     internal/value.
//
// The default Curve (refCurve, below) is a toy short Weierstrass curve over
// the field modulus and is explicitly NOT cryptographically vetted; it
// exists only so internal/value has something concrete to compute with in
// tests. This is the one place in the module documented in DESIGN.md as
// standard-library-only, since no third-party elliptic-curve package
// appears anywhere in the retrieved example repos.
package field

import "math/big"

// FieldModulus and ScalarModulus are placeholder primes distinct enough to
// catch a field/scalar value confusion in tests. A production build swaps
// these for the target curve's actual base-field and scalar-field moduli.
var (
	FieldModulus  = mustPrime("8444461749428370424248824938781546531375899335154063827935233455917409239041")
	ScalarModulus = mustPrime("8444461749428370424248824938781546531375899335154063827937910833343639831413")
)

func mustPrime(dec string) *big.Int {
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		panic("field: invalid modulus literal")
	}
	return n
}

// Elem is an element of Z/mZ for some prime modulus m (field or scalar).
type Elem struct {
	v *big.Int
	m *big.Int
}

// NewField builds a field element, reducing v modulo FieldModulus.
func NewField(v *big.Int) Elem { return Elem{new(big.Int).Mod(v, FieldModulus), FieldModulus} }

// NewScalar builds a scalar-field element, reducing v modulo ScalarModulus.
func NewScalar(v *big.Int) Elem { return Elem{new(big.Int).Mod(v, ScalarModulus), ScalarModulus} }

func (e Elem) BigInt() *big.Int { return new(big.Int).Set(e.v) }

func (e Elem) String() string { return e.v.String() }

func (e Elem) sameField(o Elem) {
	if e.m.Cmp(o.m) != 0 {
		panic("field: mixed field/scalar operands")
	}
}

func (e Elem) Add(o Elem) Elem {
	e.sameField(o)
	return Elem{new(big.Int).Mod(new(big.Int).Add(e.v, o.v), e.m), e.m}
}

func (e Elem) Sub(o Elem) Elem {
	e.sameField(o)
	return Elem{new(big.Int).Mod(new(big.Int).Sub(e.v, o.v), e.m), e.m}
}

func (e Elem) Mul(o Elem) Elem {
	e.sameField(o)
	return Elem{new(big.Int).Mod(new(big.Int).Mul(e.v, o.v), e.m), e.m}
}

// Inv returns the multiplicative inverse of e. Inversion of zero is fatal
// (spec §4.1); callers must check IsZero first.
func (e Elem) Inv() Elem {
	if e.v.Sign() == 0 {
		panic("field: inversion of zero")
	}
	return Elem{new(big.Int).ModInverse(e.v, e.m), e.m}
}

func (e Elem) Neg() Elem {
	return Elem{new(big.Int).Mod(new(big.Int).Neg(e.v), e.m), e.m}
}

func (e Elem) IsZero() bool { return e.v.Sign() == 0 }

func (e Elem) Equal(o Elem) bool { return e.m.Cmp(o.m) == 0 && e.v.Cmp(o.v) == 0 }

// Cmp gives the lexicographic comparison on the field representation used
// by spec §4.1's ordered comparisons.
func (e Elem) Cmp(o Elem) int { return e.v.Cmp(o.v) }

// Pow computes e^n for a non-negative exponent n (used by field**field).
func (e Elem) Pow(n *big.Int) Elem {
	return Elem{new(big.Int).Exp(e.v, n, e.m), e.m}
}

// Sqrt returns a square root of e, fatal if e is a non-residue (spec §4.1).
func (e Elem) Sqrt() Elem {
	r := new(big.Int).ModSqrt(e.v, e.m)
	if r == nil {
		panic("field: square root of a non-residue")
	}
	return Elem{r, e.m}
}

// Point is an affine point on a Curve, or the point at infinity when
// Infinity is true.
type Point struct {
	X, Y     Elem
	Infinity bool
}

// Curve abstracts the group law used by Group-typed values. Substituting a
// real pairing-friendly curve means implementing this interface; nothing
// in internal/value depends on the concrete representation.
type Curve interface {
	Identity() Point
	Add(a, b Point) Point
	ScalarMul(p Point, k Elem) Point
	Generator() Point
	Equal(a, b Point) bool
}

// refCurve is a toy short Weierstrass curve y^2 = x^3 + b (mod FieldModulus)
// used only as the default Curve when no real implementation is wired in.
type refCurve struct {
	b Elem
}

// DefaultCurve is the reference implementation described above.
var DefaultCurve Curve = refCurve{b: NewField(big.NewInt(1))}

func (c refCurve) Identity() Point { return Point{Infinity: true} }

func (c refCurve) Generator() Point {
	// A fixed, arbitrary low point used only so tests have a stable base
	// point; it is not guaranteed to generate the full group.
	x := NewField(big.NewInt(2))
	// y^2 = x^3 + b
	x3 := x.Mul(x).Mul(x)
	y2 := x3.Add(c.b)
	return Point{X: x, Y: y2.Sqrt()}
}

func (c refCurve) Add(a, b Point) Point {
	if a.Infinity {
		return b
	}
	if b.Infinity {
		return a
	}
	if a.X.Equal(b.X) && !a.Y.Equal(b.Y) {
		return Point{Infinity: true}
	}
	var lambda Elem
	if a.X.Equal(b.X) && a.Y.Equal(b.Y) {
		// Doubling: lambda = (3x^2) / (2y)
		three := NewField(big.NewInt(3))
		two := NewField(big.NewInt(2))
		num := three.Mul(a.X).Mul(a.X)
		den := two.Mul(a.Y)
		lambda = num.Mul(den.Inv())
	} else {
		num := b.Y.Sub(a.Y)
		den := b.X.Sub(a.X)
		lambda = num.Mul(den.Inv())
	}
	x3 := lambda.Mul(lambda).Sub(a.X).Sub(b.X)
	y3 := lambda.Mul(a.X.Sub(x3)).Sub(a.Y)
	return Point{X: x3, Y: y3}
}

func (c refCurve) ScalarMul(p Point, k Elem) Point {
	result := c.Identity()
	addend := p
	n := k.BigInt()
	for i := 0; i < n.BitLen(); i++ {
		if n.Bit(i) == 1 {
			result = c.Add(result, addend)
		}
		addend = c.Add(addend, addend)
	}
	return result
}

func (c refCurve) Equal(a, b Point) bool {
	if a.Infinity || b.Infinity {
		return a.Infinity == b.Infinity
	}
	return a.X.Equal(b.X) && a.Y.Equal(b.Y)
}
