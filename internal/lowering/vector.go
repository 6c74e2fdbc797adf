package lowering

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/types"
)

// lowerVectorOp rewrites one Vector::<op>(v, ...) intrinsic call against
// storage variable vName (element type elemT) into its aux-statement /
// result-expression pair, exactly per the table of spec §4.4.2. vName's two
// backing mappings are `<vName>_values__: u32 => elemT` and
// `<vName>_len__: bool => u32`.
func (low *storageLowerer) lowerVectorOp(ex *ast.IntrinsicExpr, vName string, elemT types.Type) (ast.Expression, []ast.Statement, bool) {
	span := ex.Span()
	valuesMap := vName + "_values__"
	lenMap := vName + "_len__"

	readLen := func() *ast.IntrinsicExpr {
		return low.mappingCall(span, ast.IntrinsicMappingGetOrUse, lenMap, types.Boolean, u32Type, []ast.Expression{low.boolLit(span, false), low.u32Lit(span, 0)}, u32Type)
	}

	switch ex.Kind {
	case ast.IntrinsicVectorLen:
		return readLen(), nil, true

	case ast.IntrinsicVectorPush:
		val := ex.Args[0]
		lName := low.names.length()
		defLen := low.defStmt(span, lName, readLen(), u32Type)
		incremented := low.binExpr(span, ast.OpAdd, low.pathExpr(span, lName, u32Type), low.u32Lit(span, 1), u32Type)
		setLen := low.exprStmt(span, low.mappingCall(span, ast.IntrinsicMappingSet, lenMap, types.Boolean, u32Type, []ast.Expression{low.boolLit(span, false), incremented}, types.Unit))
		result := low.mappingCall(span, ast.IntrinsicMappingSet, valuesMap, u32Type, elemT, []ast.Expression{low.pathExpr(span, lName, u32Type), val}, types.Unit)
		return result, []ast.Statement{defLen, setLen}, true

	case ast.IntrinsicVectorPop:
		lName := low.names.length()
		defLen := low.defStmt(span, lName, readLen(), u32Type)
		isNonEmpty := low.binExpr(span, ast.OpGt, low.pathExpr(span, lName, u32Type), low.u32Lit(span, 0), types.Boolean)
		decremented := low.binExpr(span, ast.OpSub, low.pathExpr(span, lName, u32Type), low.u32Lit(span, 1), u32Type)
		newLen := low.ternary(span, isNonEmpty, decremented, low.pathExpr(span, lName, u32Type), u32Type)
		setLen := low.exprStmt(span, low.mappingCall(span, ast.IntrinsicMappingSet, lenMap, types.Boolean, u32Type, []ast.Expression{low.boolLit(span, false), newLen}, types.Unit))

		isNonEmpty2 := low.binExpr(span, ast.OpGt, low.pathExpr(span, lName, u32Type), low.u32Lit(span, 0), types.Boolean)
		lastIdx := low.binExpr(span, ast.OpSub, low.pathExpr(span, lName, u32Type), low.u32Lit(span, 1), u32Type)
		getOrUse := low.mappingCall(span, ast.IntrinsicMappingGetOrUse, valuesMap, u32Type, elemT, []ast.Expression{lastIdx, low.zeroLit(span, elemT)}, elemT)
		none := low.noneLit(span, elemT)
		result := low.ternary(span, isNonEmpty2, getOrUse, none, types.Optional{Inner: elemT})
		return result, []ast.Statement{defLen, setLen}, true

	case ast.IntrinsicVectorGet:
		idx := ex.Args[0]
		lName := low.names.length()
		defLen := low.defStmt(span, lName, readLen(), u32Type)
		inBounds := low.binExpr(span, ast.OpLt, idx, low.pathExpr(span, lName, u32Type), types.Boolean)
		getOrUse := low.mappingCall(span, ast.IntrinsicMappingGetOrUse, valuesMap, u32Type, elemT, []ast.Expression{idx, low.zeroLit(span, elemT)}, elemT)
		none := low.noneLit(span, elemT)
		result := low.ternary(span, inBounds, getOrUse, none, types.Optional{Inner: elemT})
		return result, []ast.Statement{defLen}, true

	case ast.IntrinsicVectorSet:
		idx, val := ex.Args[0], ex.Args[1]
		lName := low.names.length()
		defLen := low.defStmt(span, lName, readLen(), u32Type)
		inBounds := low.binExpr(span, ast.OpLt, idx, low.pathExpr(span, lName, u32Type), types.Boolean)
		assertBounds := low.assertStmt(span, inBounds)
		result := low.mappingCall(span, ast.IntrinsicMappingSet, valuesMap, u32Type, elemT, []ast.Expression{idx, val}, types.Unit)
		return result, []ast.Statement{defLen, assertBounds}, true

	case ast.IntrinsicVectorClear:
		result := low.mappingCall(span, ast.IntrinsicMappingSet, lenMap, types.Boolean, u32Type, []ast.Expression{low.boolLit(span, false), low.u32Lit(span, 0)}, types.Unit)
		return result, nil, true

	case ast.IntrinsicVectorSwapRemove:
		idx := ex.Args[0]
		lName := low.names.length()
		rName := low.names.removed()
		defLen := low.defStmt(span, lName, readLen(), u32Type)
		inBounds := low.binExpr(span, ast.OpLt, idx, low.pathExpr(span, lName, u32Type), types.Boolean)
		assertBounds := low.assertStmt(span, inBounds)

		removedVal := low.mappingCall(span, ast.IntrinsicMappingGet, valuesMap, u32Type, elemT, []ast.Expression{idx}, elemT)
		defRemoved := low.defStmt(span, rName, removedVal, elemT)

		lastIdx := low.binExpr(span, ast.OpSub, low.pathExpr(span, lName, u32Type), low.u32Lit(span, 1), u32Type)
		lastVal := low.mappingCall(span, ast.IntrinsicMappingGet, valuesMap, u32Type, elemT, []ast.Expression{lastIdx}, elemT)
		setAtIdx := low.exprStmt(span, low.mappingCall(span, ast.IntrinsicMappingSet, valuesMap, u32Type, elemT, []ast.Expression{idx, lastVal}, types.Unit))

		lastIdx2 := low.binExpr(span, ast.OpSub, low.pathExpr(span, lName, u32Type), low.u32Lit(span, 1), u32Type)
		setLen := low.exprStmt(span, low.mappingCall(span, ast.IntrinsicMappingSet, lenMap, types.Boolean, u32Type, []ast.Expression{low.boolLit(span, false), lastIdx2}, types.Unit))

		result := low.pathExpr(span, rName, elemT)
		return result, []ast.Statement{defLen, assertBounds, defRemoved, setAtIdx, setLen}, true
	}

	return ex, nil, false
}
