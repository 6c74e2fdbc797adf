package value

import (
	"math/big"
	"testing"

	"github.com/leo-core/leoc/internal/types"
)

func u8(n int64) types.IntegerKind { _ = n; return types.IntegerKind{Width: types.W8, Signedness: types.Unsigned} }

// TestS1IntegerOverflow is spec §8 seed scenario S1: 200u8 + 100u8 checked-adds
// and halts with a fault at evaluation.
func TestS1IntegerOverflow(t *testing.T) {
	a, err := ParseLiteral("200", types.NewInteger(u8(0)))
	if err != nil {
		t.Fatalf("parse 200u8: %v", err)
	}
	b, err := ParseLiteral("100", types.NewInteger(u8(0)))
	if err != nil {
		t.Fatalf("parse 100u8: %v", err)
	}
	if _, err := CheckedAdd(a.(Int), b.(Int)); err == nil {
		t.Fatalf("expected checked add of 200u8+100u8 to fault on overflow")
	}
	wrapped := WrappingAdd(a.(Int), b.(Int))
	if wrapped.signedDecimal().Cmp(big.NewInt(44)) != 0 {
		t.Fatalf("expected wrapping add to give 44, got %s", wrapped.signedDecimal())
	}
}

func TestResolveUnsuffixedToField(t *testing.T) {
	u := Unsuffixed{Text: "2"}
	resolved, err := ResolveUnsuffixed(u, types.Field)
	if err != nil {
		t.Fatalf("resolve unsuffixed 2 to field: %v", err)
	}
	f, ok := resolved.(Field)
	if !ok {
		t.Fatalf("expected Field, got %T", resolved)
	}
	if f.E.String() != "2" {
		t.Fatalf("expected 2field, got %s", f.E.String())
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	v, err := ParseLiteral("-00042", types.Field)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text := CanonicalText(v)
	if text != "-42field" {
		t.Fatalf("expected canonical -42field, got %s", text)
	}
	reparsed, err := ParseLiteral(text[:len(text)-len("field")], types.Field)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !Equal(v, reparsed) {
		t.Fatalf("round trip did not preserve value: %v != %v", v, reparsed)
	}
}

func TestCheckedDivisionByZeroFaults(t *testing.T) {
	kind := u8(0)
	a, _ := ParseLiteral("10", types.NewInteger(kind))
	zero, _ := ParseLiteral("0", types.NewInteger(kind))
	if _, err := CheckedDiv(a.(Int), zero.(Int)); err == nil {
		t.Fatalf("expected division by zero to fault")
	}
	if _, err := WrappingDiv(a.(Int), zero.(Int)); err == nil {
		t.Fatalf("expected wrapping division by zero to fault")
	}
}

func TestNegAbsIntMinFatal(t *testing.T) {
	kind := types.IntegerKind{Width: types.W8, Signedness: types.Signed}
	min, _ := Bounds(kind)
	v := Int{Kind: kind, Mag: mask(kind, min)}
	if _, err := CheckedNeg(v); err == nil {
		t.Fatalf("expected CheckedNeg(INT_MIN) to fault")
	}
	if got := WrappingNeg(v); got.Mag.Cmp(v.Mag) != 0 {
		t.Fatalf("expected WrappingNeg(INT_MIN) to return INT_MIN unchanged")
	}
}

func TestShlPreservesPopcount(t *testing.T) {
	kind := types.IntegerKind{Width: types.W8, Signedness: types.Unsigned}
	v := Int{Kind: kind, Mag: big.NewInt(0b11000000)}
	amt := Int{Kind: types.IntegerKind{Width: types.W8, Signedness: types.Unsigned}, Mag: big.NewInt(1)}
	if _, err := CheckedShl(v, amt); err == nil {
		t.Fatalf("expected checked shl to fault when a set bit shifts off the high end")
	}
}
