package typecheck

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/config"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/types"
)

// checkIntrinsic type-checks the mapping/Vector/hash/commit/rand/await
// intrinsics of spec §4.4/§4.5. The receiver's declared type (mapping or
// storage Vector) determines most of the rules; the Variant name for hash
// and commit intrinsics is validated against the known algorithm set
// (spec §9 open question: unknown variants are CodeUnknownIntrinsic, never
// an emitted opcode).
func (c *Checker) checkIntrinsic(e *ast.IntrinsicExpr) types.Type {
	switch e.Kind {
	case ast.IntrinsicMappingGet, ast.IntrinsicMappingGetOrUse, ast.IntrinsicMappingSet,
		ast.IntrinsicMappingRemove, ast.IntrinsicMappingContains:
		return c.checkMappingIntrinsic(e)
	case ast.IntrinsicVectorLen, ast.IntrinsicVectorPush, ast.IntrinsicVectorPop,
		ast.IntrinsicVectorGet, ast.IntrinsicVectorSet, ast.IntrinsicVectorClear,
		ast.IntrinsicVectorSwapRemove:
		return c.checkVectorIntrinsic(e)
	case ast.IntrinsicHash, ast.IntrinsicCommit:
		if !config.IsKnownHashVariant(e.Variant) {
			c.Sink.Error(diagnostics.CodeUnknownIntrinsic, e.Span(), "unknown hash/commit variant %s", e.Variant)
			return types.Err
		}
		for _, a := range e.Args {
			c.checkExpr(a, nil)
		}
		return types.Field
	case ast.IntrinsicChaChaRand:
		return types.Field
	case ast.IntrinsicAwait:
		futT := c.checkExpr(e.Receiver, nil)
		if _, ok := futT.(types.Future); !ok && !types.IsErr(futT) {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, e.Span(), "await requires a future, found %s", futT)
			return types.Err
		}
		return types.Unit
	default:
		return types.Err
	}
}

func (c *Checker) checkMappingIntrinsic(e *ast.IntrinsicExpr) types.Type {
	recvT := c.checkExpr(e.Receiver, nil)
	m, ok := recvT.(types.Mapping)
	if !ok {
		if !types.IsErr(recvT) {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, e.Span(), "mapping intrinsic requires a mapping receiver, found %s", recvT)
		}
		return types.Err
	}
	switch e.Kind {
	case ast.IntrinsicMappingGet:
		if len(e.Args) > 0 {
			c.checkExpr(e.Args[0], m.Key)
		}
		return m.Value
	case ast.IntrinsicMappingGetOrUse:
		if len(e.Args) > 0 {
			c.checkExpr(e.Args[0], m.Key)
		}
		if len(e.Args) > 1 {
			c.checkExpr(e.Args[1], m.Value)
		}
		return m.Value
	case ast.IntrinsicMappingSet:
		if len(e.Args) > 0 {
			c.checkExpr(e.Args[0], m.Key)
		}
		if len(e.Args) > 1 {
			c.checkExpr(e.Args[1], m.Value)
		}
		return types.Unit
	case ast.IntrinsicMappingRemove:
		if len(e.Args) > 0 {
			c.checkExpr(e.Args[0], m.Key)
		}
		return types.Unit
	case ast.IntrinsicMappingContains:
		if len(e.Args) > 0 {
			c.checkExpr(e.Args[0], m.Key)
		}
		return types.Boolean
	default:
		return types.Err
	}
}

var u32Kind = types.IntegerKind{Width: types.W32, Signedness: types.Unsigned}

func (c *Checker) checkVectorIntrinsic(e *ast.IntrinsicExpr) types.Type {
	recvT := c.checkExpr(e.Receiver, nil)
	vec, ok := recvT.(types.Vector)
	if !ok {
		if !types.IsErr(recvT) {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, e.Span(), "Vector intrinsic requires a Vector receiver, found %s", recvT)
		}
		return types.Err
	}
	u32 := types.NewInteger(u32Kind)
	switch e.Kind {
	case ast.IntrinsicVectorLen:
		return u32
	case ast.IntrinsicVectorPush:
		if len(e.Args) > 0 {
			c.checkExpr(e.Args[0], vec.Elem)
		}
		return types.Unit
	case ast.IntrinsicVectorPop:
		return types.Optional{Inner: vec.Elem}
	case ast.IntrinsicVectorGet:
		if len(e.Args) > 0 {
			c.checkExpr(e.Args[0], u32)
		}
		return types.Optional{Inner: vec.Elem}
	case ast.IntrinsicVectorSet:
		if len(e.Args) > 0 {
			c.checkExpr(e.Args[0], u32)
		}
		if len(e.Args) > 1 {
			c.checkExpr(e.Args[1], vec.Elem)
		}
		return types.Unit
	case ast.IntrinsicVectorClear:
		return types.Unit
	case ast.IntrinsicVectorSwapRemove:
		if len(e.Args) > 0 {
			c.checkExpr(e.Args[0], u32)
		}
		return vec.Elem
	default:
		return types.Err
	}
}
