package typecheck

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/config"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

// checkExpr is the bidirectional visitor of spec §4.2: it visits e with an
// optional expected type (nil means "no expectation"), records the
// inferred type into the type table keyed by e's NodeId, and returns it.
func (c *Checker) checkExpr(e ast.Expression, expected types.Type) types.Type {
	t := c.inferExpr(e, expected)
	if expected != nil {
		t = c.unify(e.Span(), expected, t)
	}
	c.Types.Set(e.NodeId(), t)
	return t
}

func (c *Checker) inferExpr(e ast.Expression, expected types.Type) types.Type {
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return c.checkLiteral(ex, expected)
	case *ast.PathExpr:
		return c.checkPath(ex)
	case *ast.LocatorExpr:
		return c.checkLocator(ex)
	case *ast.ArrayAccessExpr:
		return c.checkArrayAccess(ex)
	case *ast.MemberAccessExpr:
		return c.checkMemberAccess(ex)
	case *ast.TupleAccessExpr:
		return c.checkTupleAccess(ex)
	case *ast.ArrayCtorExpr:
		return c.checkArrayCtor(ex, expected)
	case *ast.RepeatCtorExpr:
		return c.checkRepeatCtor(ex, expected)
	case *ast.BinaryExpr:
		return c.checkBinary(ex)
	case *ast.UnaryExpr:
		return c.checkUnary(ex)
	case *ast.CastExpr:
		return c.checkCast(ex)
	case *ast.CallExpr:
		return c.checkCall(ex)
	case *ast.AssociatedConstantExpr:
		return c.checkAssociatedConstant(ex)
	case *ast.AssociatedFunctionExpr:
		return c.checkAssociatedFunction(ex)
	case *ast.IntrinsicExpr:
		return c.checkIntrinsic(ex)
	case *ast.CompositeInitExpr:
		return c.checkCompositeInit(ex, expected)
	case *ast.TernaryExpr:
		return c.checkTernary(ex)
	case *ast.TupleExpr:
		return c.checkTuple(ex)
	case *ast.UnitExpr:
		return types.Unit
	case *ast.ErrExpr:
		return types.Err
	case *ast.NoneExpr:
		if opt, ok := expected.(types.Optional); ok {
			return opt
		}
		if !types.IsErr(expected) && expected != nil {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, e.Span(), "none is only valid where an Optional<T> is expected, found %s", expected)
		}
		return types.Err
	default:
		return types.Err
	}
}

func (c *Checker) checkLiteral(e *ast.LiteralExpr, expected types.Type) types.Type {
	if u, isUnsuffixed := e.Value.(value.Unsuffixed); isUnsuffixed {
		if expected == nil || !(types.IsInteger(expected) || expected == types.Field || expected == types.Group || expected == types.Scalar) {
			c.Sink.Error(diagnostics.CodeUnexpectedUnsuffixedNumeral, e.Span(), "unsuffixed literal cannot be resolved without an expected numeric type")
			return types.Err
		}
		if !types.IsInteger(expected) && value.HasHexOrBinPrefix(u.Text) {
			c.Sink.Error(diagnostics.CodeHexBinLiteralOnNonInteger, e.Span(), "hex/binary literal %s is not valid for non-integer type %s", u.Text, expected)
			return types.Err
		}
		resolved, err := value.ResolveUnsuffixed(e.Value, expected)
		if err != nil {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, e.Span(), "%v", err)
			return types.Err
		}
		e.Value = resolved
	}
	return e.Value.Type()
}

// checkPath implements spec §4.2 "Path: lookup in local scope, then in
// the current program scope".
func (c *Checker) checkPath(e *ast.PathExpr) types.Type {
	if sym, ok := c.scope.Resolve(e.Name); ok {
		return sym.Type
	}
	if decl := c.program.FindFunction(e.Name); decl != nil {
		c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "%s names a function, not a value", e.Name)
		return types.Err
	}
	if cst, ok := c.Global.Const(c.program.Program, e.Name); ok {
		return c.Types.MustGet(cst.Value.NodeId())
	}
	if sv, ok := c.Global.StorageVar(c.program.Program, e.Name); ok {
		if sv.Type != nil {
			if _, isVec := sv.Type.(types.Vector); isVec {
				return sv.Type
			}
		}
		return types.Optional{Inner: sv.Type}
	}
	if m, ok := c.Global.Mapping(c.program.Program, e.Name); ok {
		return types.Mapping{Key: m.Key, Value: m.Value}
	}
	c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "unknown symbol %s", e.Name)
	return types.Err
}

// checkLocator resolves a cross-program reference `program.aleo/name`
// (spec §3.3, GLOSSARY "Locator").
func (c *Checker) checkLocator(e *ast.LocatorExpr) types.Type {
	if e.Network != "" && e.Network != config.DefaultNetwork {
		c.Sink.Error(diagnostics.CodeUnknownNetwork, e.Span(), "unknown network %s", e.Network)
		return types.Err
	}
	scope, ok := c.Global.Program(e.Program)
	if !ok {
		c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "unknown program %s", e.Program)
		return types.Err
	}
	if fn := scope.FindFunction(e.Name); fn != nil {
		if len(fn.Outputs) == 1 {
			return fn.Outputs[0]
		}
		return types.Tuple{Elems: fn.Outputs}
	}
	if st := scope.FindStruct(e.Name); st != nil {
		return types.Composite{Program: e.Program, Name: st.Name}
	}
	c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "unknown item %s in program %s", e.Name, e.Program)
	return types.Err
}

func (c *Checker) checkArrayAccess(e *ast.ArrayAccessExpr) types.Type {
	arrT := c.checkExpr(e.Array, nil)
	c.checkExpr(e.Index, nil)
	arr, ok := arrT.(types.Array)
	if !ok {
		if !types.IsErr(arrT) {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, e.Span(), "cannot index non-array type %s", arrT)
		}
		return types.Err
	}
	return arr.Elem
}

// checkMemberAccess implements spec §4.2's self/block/network intrinsic
// member rules and struct field access.
func (c *Checker) checkMemberAccess(e *ast.MemberAccessExpr) types.Type {
	if path, ok := e.Object.(*ast.PathExpr); ok {
		switch path.Name {
		case "self":
			switch e.Member {
			case config.SelfCallerMember, config.SelfSignerMember:
				return types.Address
			case "checksum", "edition", "program_owner":
				return types.Field
			default:
				c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "self.%s is not an admissible member", e.Member)
				return types.Err
			}
		case "block":
			if c.fn == nil || c.fn.Variant != ast.VariantAsyncFunction {
				c.Sink.Error(diagnostics.CodeAsyncCallOnlyFromAsyncTransition, e.Span(), "block.%s is only accessible inside an async function body", e.Member)
			}
			if e.Member == config.BlockHeightMember {
				return types.NewInteger(types.IntegerKind{Width: types.W32, Signedness: types.Unsigned})
			}
			return types.NewInteger(types.IntegerKind{Width: types.W64, Signedness: types.Unsigned})
		case "network":
			if c.fn == nil || c.fn.Variant != ast.VariantAsyncFunction {
				c.Sink.Error(diagnostics.CodeAsyncCallOnlyFromAsyncTransition, e.Span(), "network.%s is only accessible inside an async function body", e.Member)
			}
			return types.NewInteger(types.IntegerKind{Width: types.W16, Signedness: types.Unsigned})
		}
	}

	objT := c.checkExpr(e.Object, nil)
	comp, ok := objT.(types.Composite)
	if !ok {
		if !types.IsErr(objT) {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, e.Span(), "cannot access member %s of non-composite type %s", e.Member, objT)
		}
		return types.Err
	}
	decl, ok := c.Global.Struct(comp.Program, comp.Name)
	if !ok {
		decl = c.program.FindStruct(comp.Name)
	}
	if decl == nil {
		c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "unknown composite %s", comp.Name)
		return types.Err
	}
	for _, f := range decl.Fields {
		if f.Name == e.Member {
			return f.Type
		}
	}
	c.Sink.Error(diagnostics.CodeMissingStructMember, e.Span(), "no member %s on %s", e.Member, decl.Name)
	return types.Err
}

func (c *Checker) checkTupleAccess(e *ast.TupleAccessExpr) types.Type {
	tupT := c.checkExpr(e.Tuple, nil)
	tup, ok := tupT.(types.Tuple)
	if !ok {
		if !types.IsErr(tupT) {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, e.Span(), "cannot index non-tuple type %s", tupT)
		}
		return types.Err
	}
	if e.Index < 0 || e.Index >= len(tup.Elems) {
		c.Sink.Error(diagnostics.CodeTupleOutOfRange, e.Span(), "tuple index %d out of range for %s", e.Index, tupT)
		return types.Err
	}
	return tup.Elems[e.Index]
}

func (c *Checker) checkArrayCtor(e *ast.ArrayCtorExpr, expected types.Type) types.Type {
	if len(e.Elements) == 0 {
		c.Sink.Error(diagnostics.CodeArrayEmpty, e.Span(), "array literal must have at least one element")
		return types.Err
	}
	if len(e.Elements) > config.MaxArrayLength {
		c.Sink.Error(diagnostics.CodeArrayTooLarge, e.Span(), "array literal has %d elements, exceeding the maximum of %d", len(e.Elements), config.MaxArrayLength)
		return types.Err
	}
	var elemExpected types.Type
	if arr, ok := expected.(types.Array); ok {
		elemExpected = arr.Elem
	}
	elemT := c.checkExpr(e.Elements[0], elemExpected)
	for _, el := range e.Elements[1:] {
		c.checkExpr(el, elemT)
	}
	return types.Array{Elem: elemT, Length: types.ConstLength{Value: int64(len(e.Elements))}}
}

func (c *Checker) checkRepeatCtor(e *ast.RepeatCtorExpr, expected types.Type) types.Type {
	var elemExpected types.Type
	if arr, ok := expected.(types.Array); ok {
		elemExpected = arr.Elem
	}
	elemT := c.checkExpr(e.Element, elemExpected)
	if e.Count <= 0 {
		c.Sink.Error(diagnostics.CodeArrayEmpty, e.Span(), "repeat count must be positive")
		return types.Err
	}
	if e.Count > config.MaxArrayLength {
		c.Sink.Error(diagnostics.CodeArrayTooLarge, e.Span(), "repeat count %d exceeds the maximum array length of %d", e.Count, config.MaxArrayLength)
		return types.Err
	}
	return types.Array{Elem: elemT, Length: types.ConstLength{Value: e.Count}}
}

func (c *Checker) checkTernary(e *ast.TernaryExpr) types.Type {
	c.checkExpr(e.Cond, types.Boolean)
	thenT := c.checkExpr(e.Then, nil)
	elseT := c.checkExpr(e.Else, nil)
	common, ok := types.CommonArm(thenT, elseT)
	if !ok {
		c.Sink.Error(diagnostics.CodeTernaryBranchMismatch, e.Span(), "ternary branches have incompatible types %s and %s", thenT, elseT)
		return types.Err
	}
	return common
}

func (c *Checker) checkTuple(e *ast.TupleExpr) types.Type {
	elems := make([]types.Type, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = c.checkExpr(el, nil)
	}
	return types.Tuple{Elems: elems}
}

func (c *Checker) checkAssociatedConstant(e *ast.AssociatedConstantExpr) types.Type {
	if kind, ok := integerKindFromName(e.Qualifier); ok {
		switch e.Name {
		case "MAX", "MIN":
			return types.NewInteger(kind)
		}
	}
	c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "unknown associated constant %s::%s", e.Qualifier, e.Name)
	return types.Err
}

func (c *Checker) checkAssociatedFunction(e *ast.AssociatedFunctionExpr) types.Type {
	for _, a := range e.Args {
		c.checkExpr(a, nil)
	}
	if config.IsKnownHashVariant(e.Qualifier) {
		return types.Field
	}
	c.Sink.Error(diagnostics.CodeUnknownIntrinsic, e.Span(), "unknown associated function %s::%s", e.Qualifier, e.Name)
	return types.Err
}

func integerKindFromName(name string) (types.IntegerKind, bool) {
	for _, w := range types.Widths {
		for _, s := range []types.Signedness{types.Unsigned, types.Signed} {
			if types.IntegerKind{Width: w, Signedness: s}.String() == name {
				return types.IntegerKind{Width: w, Signedness: s}, true
			}
		}
	}
	return types.IntegerKind{}, false
}
