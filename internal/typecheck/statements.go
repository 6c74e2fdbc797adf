package typecheck

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/symbols"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

// checkBlock type-checks each statement in order, pushing a nested scope
// (spec §3.3 "A Block owns an ordered sequence of statements and a
// scope"), and reports unreachable code after a return (spec §7).
func (c *Checker) checkBlock(b *ast.Block) {
	outer := c.scope
	c.scope = symbols.NewScope(outer)
	defer func() { c.scope = outer }()

	returnedAt := -1
	for i, stmt := range b.Statements {
		if returnedAt >= 0 {
			c.Sink.Error(diagnostics.CodeUnreachableAfterReturn, stmt.Span(), "unreachable statement after return")
			returnedAt = -2 // only report once per block
		}
		c.checkStmt(stmt)
		if _, ok := stmt.(*ast.ReturnStmt); ok && returnedAt == -1 {
			returnedAt = i
		}
	}
}

func (c *Checker) checkStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.AssertStmt:
		c.checkAssert(st)
	case *ast.AssignStmt:
		c.checkAssign(st)
	case *ast.ConditionalStmt:
		c.checkConditional(st)
	case *ast.ConstBindingStmt:
		c.checkConstBinding(st)
	case *ast.ConstDecl:
		c.checkConstDecl(st)
	case *ast.DefinitionStmt:
		c.checkDefinition(st)
	case *ast.ExprStmt:
		c.checkExpr(st.Expr, nil)
	case *ast.IterationStmt:
		c.checkIteration(st)
	case *ast.ReturnStmt:
		c.checkReturn(st)
	case *ast.Block:
		c.checkBlock(st)
	}
}

func (c *Checker) checkAssert(s *ast.AssertStmt) {
	if s.Right == nil {
		c.checkExpr(s.Left, types.Boolean)
		return
	}
	leftT := c.checkExpr(s.Left, nil)
	c.checkExpr(s.Right, leftT)
}

// checkAssign checks assignment to an existing mutable place. Compound
// operator forms have already been desugared to `place = place op rhs`
// upstream of the checker (spec §3.3), so this always sees a plain
// assignment with a fully formed right-hand side.
func (c *Checker) checkAssign(s *ast.AssignStmt) {
	placeT := c.checkExpr(s.Place, nil)
	if path, ok := s.Place.(*ast.PathExpr); ok {
		if sym, found := c.scope.Resolve(path.Name); found && !sym.Mutable && sym.Kind == symbols.KindConstParam {
			c.Sink.Error(diagnostics.CodeCannotAssignToConst, s.Span(), "cannot assign to const parameter %s", path.Name)
			return
		}
		if _, isConst := c.Global.Const(c.program.Program, path.Name); isConst {
			c.Sink.Error(diagnostics.CodeCannotAssignToConst, s.Span(), "cannot assign to constant %s", path.Name)
			return
		}
	}
	c.checkExpr(s.Value, placeT)
}

func (c *Checker) checkConditional(s *ast.ConditionalStmt) {
	c.checkExpr(s.Cond, types.Boolean)
	c.condDepth++
	c.checkBlock(s.Then)
	if s.Else != nil {
		c.checkBlock(s.Else)
	}
	c.condDepth--
}

func (c *Checker) checkConstBinding(s *ast.ConstBindingStmt) {
	valT := c.checkExpr(s.Value, s.Type)
	c.scope.Define(symbols.Symbol{Name: s.Name, Kind: symbols.KindConst, Type: valT, Mutable: false})
}

func (c *Checker) checkConstDecl(s *ast.ConstDecl) {
	valT := c.checkExpr(s.Value, s.Type)
	c.Types.Set(s.NodeId(), valT)
}

// checkDefinition checks a `let` binding, including tuple-destructuring
// places (spec §3.3).
func (c *Checker) checkDefinition(s *ast.DefinitionStmt) {
	var expected types.Type
	if len(s.Names) == 1 {
		expected = s.Types[0]
	}
	valT := c.checkExpr(s.Value, expected)

	if len(s.Names) == 1 {
		if _, isFuture := valT.(types.Future); isFuture {
			c.futures.produce(s.Names[0])
		}
		c.scope.Define(symbols.Symbol{Name: s.Names[0], Kind: symbols.KindVariable, Type: valT, Mutable: true})
		return
	}

	tup, ok := valT.(types.Tuple)
	if !ok {
		if !types.IsErr(valT) {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, s.Span(), "expected a tuple of %d elements, found %s", len(s.Names), valT)
		}
		for _, n := range s.Names {
			c.scope.Define(symbols.Symbol{Name: n, Kind: symbols.KindVariable, Type: types.Err, Mutable: true})
		}
		return
	}
	for i, n := range s.Names {
		var t types.Type = types.Err
		if i < len(tup.Elems) {
			t = tup.Elems[i]
		}
		c.scope.Define(symbols.Symbol{Name: n, Kind: symbols.KindVariable, Type: t, Mutable: true})
	}
}

// checkIteration checks a half-open integer range loop (spec §3.3, §7
// "loop-range-decreasing", "loop-bound-type-mismatch",
// "loop-body-contains-return").
func (c *Checker) checkIteration(s *ast.IterationStmt) {
	expected := s.ElemType
	lowT := c.checkExpr(s.Low, expected)
	highT := c.checkExpr(s.High, lowT)
	if !types.IsInteger(lowT) && !types.IsErr(lowT) {
		c.Sink.Error(diagnostics.CodeLoopBoundTypeMismatch, s.Span(), "loop bounds must be integers, found %s", lowT)
	} else if !types.Equal(lowT, highT) && !types.IsErr(highT) {
		c.Sink.Error(diagnostics.CodeLoopBoundTypeMismatch, s.Span(), "loop bounds must share the same integer type, found %s and %s", lowT, highT)
	}
	if lit, ok := s.Low.(*ast.LiteralExpr); ok {
		if hi, ok2 := s.High.(*ast.LiteralExpr); ok2 {
			if decreasingLiteralRange(lit, hi) {
				c.Sink.Error(diagnostics.CodeLoopRangeDecreasing, s.Span(), "loop range is decreasing")
			}
		}
	}

	outer := c.scope
	c.scope = symbols.NewScope(outer)
	c.scope.Define(symbols.Symbol{Name: s.Name, Kind: symbols.KindVariable, Type: lowT, Mutable: false})
	if containsReturn(s.Body) {
		c.Sink.Error(diagnostics.CodeLoopBodyContainsReturn, s.Span(), "loop body may not contain a return statement")
	}
	for _, stmt := range s.Body.Statements {
		c.checkStmt(stmt)
	}
	c.scope = outer
}

func containsReturn(b *ast.Block) bool {
	for _, s := range b.Statements {
		switch st := s.(type) {
		case *ast.ReturnStmt:
			return true
		case *ast.ConditionalStmt:
			if containsReturn(st.Then) {
				return true
			}
			if st.Else != nil && containsReturn(st.Else) {
				return true
			}
		case *ast.Block:
			if containsReturn(st) {
				return true
			}
		}
	}
	return false
}

// decreasingLiteralRange reports whether two integer literal bounds form a
// decreasing range (spec §7 "loop-range-decreasing"); non-integer or
// unresolved literals are never flagged here.
func decreasingLiteralRange(lo, hi *ast.LiteralExpr) bool {
	loInt, ok1 := lo.Value.(value.Int)
	hiInt, ok2 := hi.Value.(value.Int)
	if !ok1 || !ok2 {
		return false
	}
	return value.Compare(loInt, hiInt) >= 0
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) {
	var expected types.Type
	if c.fn != nil {
		switch len(c.fn.Outputs) {
		case 0:
			expected = types.Unit
		case 1:
			expected = c.fn.Outputs[0]
		default:
			expected = types.Tuple{Elems: c.fn.Outputs}
		}
	}
	if s.Value == nil {
		return
	}
	c.checkExpr(s.Value, expected)
}
