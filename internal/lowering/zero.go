package lowering

import (
	"math/big"

	"github.com/leo-core/leoc/internal/field"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

// zeroValue builds the canonical zero of T used by get_or_use defaults
// (spec §4.4.1 "0T is the canonical zero of T"). Storage invariant 3.4
// restricts T to non-record, non-tuple types, so this covers every shape
// storage lowering can actually meet.
func zeroValue(t types.Type) value.Value {
	switch tt := t.(type) {
	case types.Integer:
		return value.Int{Kind: tt.Kind(), Mag: big.NewInt(0)}
	}
	switch t {
	case types.Field:
		return value.Field{E: field.NewField(big.NewInt(0))}
	case types.Scalar:
		return value.Scalar{E: field.NewScalar(big.NewInt(0))}
	case types.Group:
		return value.Group{P: field.DefaultCurve.Identity(), Curve: field.DefaultCurve}
	case types.Boolean:
		return value.Bool(false)
	case types.Address:
		return value.Address("")
	case types.Signature:
		return value.Signature("")
	case types.String:
		return value.Str("")
	}
	if arr, ok := t.(types.Array); ok {
		elems := make([]value.Value, arr.Length.Value)
		for i := range elems {
			elems[i] = zeroValue(arr.Elem)
		}
		return value.Array{Elems: elems, Elem: arr.Elem}
	}
	return value.Unit{}
}
