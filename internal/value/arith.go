package value

import (
	"fmt"
	"math/big"

	"github.com/leo-core/leoc/internal/types"
)

// Fault is returned by an arithmetic operation that spec §4.1 marks
// "fatal": checked overflow, division/remainder by zero (checked or
// wrapping), negation/absolute-value of INT_MIN, field inversion of zero,
// square root of a non-residue, or a malformed/out-of-range literal. It is
// an explicit error rather than a panic so constant folding in the type
// checker and any local-execution interpreter can both decide, at their own
// boundary, whether a Fault aborts compilation or halts execution (spec §1:
// the core itself never halts or suspends).
type Fault struct {
	Op  string
	Why string
}

func (f *Fault) Error() string { return fmt.Sprintf("%s: %s", f.Op, f.Why) }

func fault(op, why string, args ...any) *Fault {
	return &Fault{Op: op, Why: fmt.Sprintf(why, args...)}
}

// Bounds returns the inclusive [min, max] range representable by kind.
func Bounds(kind types.IntegerKind) (min, max *big.Int) {
	w := uint(kind.Width)
	if kind.Signedness == types.Unsigned {
		return big.NewInt(0), new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), w), big.NewInt(1))
	}
	half := new(big.Int).Lsh(big.NewInt(1), w-1)
	min = new(big.Int).Neg(half)
	max = new(big.Int).Sub(half, big.NewInt(1))
	return min, max
}

func modulus(kind types.IntegerKind) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(kind.Width))
}

// mask reduces a signed big.Int down to its Width-bit two's-complement
// unsigned bit pattern (wrapping semantics).
func mask(kind types.IntegerKind, signed *big.Int) *big.Int {
	m := modulus(kind)
	r := new(big.Int).Mod(signed, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	return r
}

func newInt(kind types.IntegerKind, signed *big.Int) Int {
	return Int{Kind: kind, Mag: mask(kind, signed)}
}

func sameKind(op string, a, b Int) error {
	if a.Kind != b.Kind {
		return fault(op, "operand kinds differ: %s vs %s", a.Kind, b.Kind)
	}
	return nil
}

func checkedResult(op string, kind types.IntegerKind, signed *big.Int) (Int, error) {
	min, max := Bounds(kind)
	if signed.Cmp(min) < 0 || signed.Cmp(max) > 0 {
		return Int{}, fault(op, "overflow for type %s", kind)
	}
	return newInt(kind, signed), nil
}

// CheckedAdd, CheckedSub, CheckedMul compute the operation and fail if the
// true result falls outside Bounds(kind).
func CheckedAdd(a, b Int) (Int, error) {
	if err := sameKind("add", a, b); err != nil {
		return Int{}, err
	}
	return checkedResult("add", a.Kind, new(big.Int).Add(a.signedDecimal(), b.signedDecimal()))
}

func CheckedSub(a, b Int) (Int, error) {
	if err := sameKind("sub", a, b); err != nil {
		return Int{}, err
	}
	return checkedResult("sub", a.Kind, new(big.Int).Sub(a.signedDecimal(), b.signedDecimal()))
}

func CheckedMul(a, b Int) (Int, error) {
	if err := sameKind("mul", a, b); err != nil {
		return Int{}, err
	}
	return checkedResult("mul", a.Kind, new(big.Int).Mul(a.signedDecimal(), b.signedDecimal()))
}

// WrappingAdd, WrappingSub, WrappingMul never fail; they two's-complement
// wrap (spec §4.1).
func WrappingAdd(a, b Int) Int {
	return newInt(a.Kind, new(big.Int).Add(a.signedDecimal(), b.signedDecimal()))
}

func WrappingSub(a, b Int) Int {
	return newInt(a.Kind, new(big.Int).Sub(a.signedDecimal(), b.signedDecimal()))
}

func WrappingMul(a, b Int) Int {
	return newInt(a.Kind, new(big.Int).Mul(a.signedDecimal(), b.signedDecimal()))
}

// CheckedDiv, CheckedRem, WrappingDiv, WrappingRem: division/remainder by
// zero is always fatal in both flavors (spec §4.1).
func CheckedDiv(a, b Int) (Int, error) {
	if err := sameKind("div", a, b); err != nil {
		return Int{}, err
	}
	if b.signedDecimal().Sign() == 0 {
		return Int{}, fault("div", "division by zero")
	}
	return checkedResult("div", a.Kind, new(big.Int).Quo(a.signedDecimal(), b.signedDecimal()))
}

func CheckedRem(a, b Int) (Int, error) {
	if err := sameKind("rem", a, b); err != nil {
		return Int{}, err
	}
	if b.signedDecimal().Sign() == 0 {
		return Int{}, fault("rem", "remainder by zero")
	}
	return newInt(a.Kind, new(big.Int).Rem(a.signedDecimal(), b.signedDecimal())), nil
}

func WrappingDiv(a, b Int) (Int, error) {
	if b.signedDecimal().Sign() == 0 {
		return Int{}, fault("div.w", "division by zero")
	}
	return newInt(a.Kind, new(big.Int).Quo(a.signedDecimal(), b.signedDecimal())), nil
}

func WrappingRem(a, b Int) (Int, error) {
	if b.signedDecimal().Sign() == 0 {
		return Int{}, fault("rem.w", "remainder by zero")
	}
	return newInt(a.Kind, new(big.Int).Rem(a.signedDecimal(), b.signedDecimal())), nil
}

// CheckedNeg, CheckedAbs are fatal on INT_MIN (no positive counterpart);
// WrappingNeg/WrappingAbs return INT_MIN unchanged (spec §4.1).
func CheckedNeg(a Int) (Int, error) {
	min, _ := Bounds(a.Kind)
	if a.signedDecimal().Cmp(min) == 0 {
		return Int{}, fault("neg", "negation of %s overflows", a.Kind)
	}
	return newInt(a.Kind, new(big.Int).Neg(a.signedDecimal())), nil
}

func CheckedAbs(a Int) (Int, error) {
	min, _ := Bounds(a.Kind)
	if a.signedDecimal().Cmp(min) == 0 {
		return Int{}, fault("abs", "absolute value of %s overflows", a.Kind)
	}
	return newInt(a.Kind, new(big.Int).Abs(a.signedDecimal())), nil
}

func WrappingNeg(a Int) Int {
	min, _ := Bounds(a.Kind)
	if a.signedDecimal().Cmp(min) == 0 {
		return a
	}
	return newInt(a.Kind, new(big.Int).Neg(a.signedDecimal()))
}

func WrappingAbs(a Int) Int {
	min, _ := Bounds(a.Kind)
	if a.signedDecimal().Cmp(min) == 0 {
		return a
	}
	return newInt(a.Kind, new(big.Int).Abs(a.signedDecimal()))
}

// CheckedPow raises a to the exponent b (an 8/16/32-bit unsigned amount)
// with checked overflow; WrappingPow wraps.
func CheckedPow(a, b Int) (Int, error) {
	if b.Kind.Signedness != types.Unsigned || (b.Kind.Width != types.W8 && b.Kind.Width != types.W16 && b.Kind.Width != types.W32) {
		return Int{}, fault("pow", "exponent must be u8, u16 or u32")
	}
	return checkedResult("pow", a.Kind, new(big.Int).Exp(a.signedDecimal(), b.Mag, nil))
}

func WrappingPow(a, b Int) (Int, error) {
	if b.Kind.Signedness != types.Unsigned || (b.Kind.Width != types.W8 && b.Kind.Width != types.W16 && b.Kind.Width != types.W32) {
		return Int{}, fault("pow.w", "exponent must be u8, u16 or u32")
	}
	return newInt(a.Kind, new(big.Int).Exp(a.signedDecimal(), b.Mag, nil)), nil
}

// shiftAmountOK validates a shl/shr amount operand per spec §4.1: only
// u8/u16/u32 amounts are accepted, and the amount must be strictly less
// than the bit-width for the checked form.
func shiftAmountOK(op string, value Int, amount Int) error {
	if amount.Kind.Signedness != types.Unsigned || (amount.Kind.Width != types.W8 && amount.Kind.Width != types.W16 && amount.Kind.Width != types.W32) {
		return fault(op, "shift amount must be u8, u16 or u32")
	}
	if amount.Mag.Cmp(big.NewInt(int64(value.Kind.Width))) >= 0 {
		return fault(op, "shift amount %s not strictly less than width %d", amount.Mag, value.Kind.Width)
	}
	return nil
}

// CheckedShl fails if any bit would be shifted off the high end (spec
// §4.1: "the amount for the checked shl must preserve the popcount").
func CheckedShl(a, amount Int) (Int, error) {
	if err := shiftAmountOK("shl", a, amount); err != nil {
		return Int{}, err
	}
	shifted := new(big.Int).Lsh(a.Mag, uint(amount.Mag.Int64()))
	result := mask(a.Kind, shifted)
	if popcount(shifted) != popcount(result) {
		return Int{}, fault("shl", "shift overflows %s (bits shifted off)", a.Kind)
	}
	return Int{Kind: a.Kind, Mag: result}, nil
}

func WrappingShl(a, amount Int) (Int, error) {
	if err := shiftAmountOK("shl.w", a, amount); err != nil {
		return Int{}, err
	}
	return Int{Kind: a.Kind, Mag: mask(a.Kind, new(big.Int).Lsh(a.Mag, uint(amount.Mag.Int64())))}, nil
}

func CheckedShr(a, amount Int) (Int, error) {
	if err := shiftAmountOK("shr", a, amount); err != nil {
		return Int{}, err
	}
	return arithmeticShr(a, amount), nil
}

func WrappingShr(a, amount Int) (Int, error) {
	if err := shiftAmountOK("shr.w", a, amount); err != nil {
		return Int{}, err
	}
	return arithmeticShr(a, amount), nil
}

func arithmeticShr(a, amount Int) Int {
	return newInt(a.Kind, new(big.Int).Rsh(a.signedDecimal(), uint(amount.Mag.Int64())))
}

func popcount(n *big.Int) int {
	count := 0
	for _, w := range n.Bits() {
		for w != 0 {
			count += int(w & 1)
			w >>= 1
		}
	}
	return count
}

// Bitwise ops: And/Or/Xor/Not are defined on booleans and integers (spec
// §4.1); LAnd/LOr are the boolean-only logical forms.
func And(a, b Value) (Value, error) {
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		if !ok {
			return nil, fault("and", "operand types differ")
		}
		return Bool(bool(av) && bool(bv)), nil
	case Int:
		bv, ok := b.(Int)
		if !ok || av.Kind != bv.Kind {
			return nil, fault("and", "operand kinds differ")
		}
		return Int{Kind: av.Kind, Mag: new(big.Int).And(av.Mag, bv.Mag)}, nil
	default:
		return nil, fault("and", "not defined for %T", a)
	}
}

func Or(a, b Value) (Value, error) {
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		if !ok {
			return nil, fault("or", "operand types differ")
		}
		return Bool(bool(av) || bool(bv)), nil
	case Int:
		bv, ok := b.(Int)
		if !ok || av.Kind != bv.Kind {
			return nil, fault("or", "operand kinds differ")
		}
		return Int{Kind: av.Kind, Mag: new(big.Int).Or(av.Mag, bv.Mag)}, nil
	default:
		return nil, fault("or", "not defined for %T", a)
	}
}

func Xor(a, b Value) (Value, error) {
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		if !ok {
			return nil, fault("xor", "operand types differ")
		}
		return Bool(bool(av) != bool(bv)), nil
	case Int:
		bv, ok := b.(Int)
		if !ok || av.Kind != bv.Kind {
			return nil, fault("xor", "operand kinds differ")
		}
		return Int{Kind: av.Kind, Mag: mask(av.Kind, new(big.Int).Xor(av.Mag, bv.Mag))}, nil
	default:
		return nil, fault("xor", "not defined for %T", a)
	}
}

func Not(a Value) (Value, error) {
	switch av := a.(type) {
	case Bool:
		return Bool(!bool(av)), nil
	case Int:
		return Int{Kind: av.Kind, Mag: mask(av.Kind, new(big.Int).Not(av.Mag))}, nil
	default:
		return nil, fault("not", "not defined for %T", a)
	}
}
