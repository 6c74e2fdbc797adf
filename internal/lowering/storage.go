package lowering

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/source"
	"github.com/leo-core/leoc/internal/types"
)

// VisitStmt rewrites `x = <value>;` for an implicit-Optional storage
// variable x into the mapping set/remove forms of spec §4.4.1: `x = none;`
// becomes `x__.remove(false);`, anything else becomes `x__.set(false, v);`.
func (low *storageLowerer) VisitStmt(s ast.Statement) (ast.Statement, []ast.Statement, bool) {
	assign, ok := s.(*ast.AssignStmt)
	if !ok {
		return s, nil, false
	}
	place, ok := assign.Place.(*ast.PathExpr)
	if !ok {
		return s, nil, false
	}
	innerT, isOptional := low.optional[place.Name]
	if !isOptional {
		return s, nil, false
	}

	val, aux := low.rec.ReconstructExpr(assign.Value)
	span := assign.Span()
	mapName := place.Name + "__"

	if _, isNone := val.(*ast.NoneExpr); isNone {
		remove := low.mappingCall(span, ast.IntrinsicMappingRemove, mapName, types.Boolean, innerT, []ast.Expression{low.boolLit(span, false)}, types.Unit)
		return low.exprStmt(span, remove), aux, true
	}

	set := low.mappingCall(span, ast.IntrinsicMappingSet, mapName, types.Boolean, innerT, []ast.Expression{low.boolLit(span, false), val}, types.Unit)
	return low.exprStmt(span, set), aux, true
}

// VisitExpr rewrites a read of an implicit-Optional storage variable into
// the contains/get_or_use ternary of spec §4.4.1, and defers to
// lowerVectorOp for Vector-intrinsic calls on Vector storage.
func (low *storageLowerer) VisitExpr(e ast.Expression) (ast.Expression, []ast.Statement, bool) {
	switch ex := e.(type) {
	case *ast.PathExpr:
		innerT, ok := low.optional[ex.Name]
		if !ok {
			return e, nil, false
		}
		return low.optionalRead(ex.Span(), ex.Name, innerT), nil, true

	case *ast.IntrinsicExpr:
		if ex.Receiver == nil {
			return e, nil, false
		}
		recv, ok := ex.Receiver.(*ast.PathExpr)
		if !ok {
			return e, nil, false
		}
		elemT, ok := low.vector[recv.Name]
		if !ok {
			return e, nil, false
		}
		return low.lowerVectorOp(ex, recv.Name, elemT)

	default:
		return e, nil, false
	}
}

// optionalRead builds `x__.contains(false) ? x__.get_or_use(false, 0T) : none`.
func (low *storageLowerer) optionalRead(span source.Span, name string, innerT types.Type) ast.Expression {
	mapName := name + "__"
	contains := low.mappingCall(span, ast.IntrinsicMappingContains, mapName, types.Boolean, innerT, []ast.Expression{low.boolLit(span, false)}, types.Boolean)
	getOrUse := low.mappingCall(span, ast.IntrinsicMappingGetOrUse, mapName, types.Boolean, innerT, []ast.Expression{low.boolLit(span, false), low.zeroLit(span, innerT)}, innerT)
	none := low.noneLit(span, innerT)
	return low.ternary(span, contains, getOrUse, none, types.Optional{Inner: innerT})
}
