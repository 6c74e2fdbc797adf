// Package reconstruct implements the AST reconstructor framework of spec
// §4.3: infrastructure that walks a typed AST producing a new AST plus an
// ordered list of auxiliary statements at each expression site, used by
// every lowering pass (storage-lowering, and any future simplification
// pass).
//
// Conceptually grounded on the teacher's ast.Visitor double-dispatch shape
// (internal/ast/ast_expressions.go's Accept(v Visitor) methods): where the
// teacher's visitor returns nothing and mutates external state, this
// package's visitor returns (newNode, auxStatements) from every visit, so a
// lowering can expand one expression into several statements without
// mutating the tree in place (spec §9 "Lowering as tree-in / tree-out with
// side-statements").
package reconstruct

import "github.com/leo-core/leoc/internal/ast"

// ExprVisitor rewrites one expression node, returning its replacement and
// any statements that must run before the statement containing it. Callers
// implement one case per ast.Expression kind they care about; ReconstructExpr
// recurses into children the visitor doesn't rewrite itself.
type ExprVisitor interface {
	VisitExpr(e ast.Expression) (ast.Expression, []ast.Statement, bool)
}

// StmtVisitor rewrites one statement node the same way.
type StmtVisitor interface {
	VisitStmt(s ast.Statement) (ast.Statement, []ast.Statement, bool)
}

// Reconstructor drives a combined Expr/Stmt visitor bottom-up over a
// Function body.
type Reconstructor struct {
	Expr ExprVisitor
	Stmt StmtVisitor
}

// ReconstructBlock rewrites every statement of b, flattening each
// statement's auxiliary statements ahead of its replacement (spec §4.3 "A
// block is flattened by concatenating, for each original statement, its
// auxiliary statements followed by its replacement").
func (r *Reconstructor) ReconstructBlock(b *ast.Block) *ast.Block {
	out := make([]ast.Statement, 0, len(b.Statements))
	for _, stmt := range b.Statements {
		newStmt, aux := r.ReconstructStmt(stmt)
		out = append(out, aux...)
		out = append(out, newStmt)
	}
	return &ast.Block{Identity: b.Identity, Statements: out}
}

// ReconstructStmt rewrites one statement, first giving the caller's
// StmtVisitor a chance to replace it wholesale, then structurally
// recursing into any nested expressions/blocks it owns.
func (r *Reconstructor) ReconstructStmt(s ast.Statement) (ast.Statement, []ast.Statement) {
	if r.Stmt != nil {
		if newS, aux, handled := r.Stmt.VisitStmt(s); handled {
			return newS, aux
		}
	}

	switch st := s.(type) {
	case *ast.AssertStmt:
		left, auxL := r.ReconstructExpr(st.Left)
		var right ast.Expression
		var auxR []ast.Statement
		if st.Right != nil {
			right, auxR = r.ReconstructExpr(st.Right)
		}
		return &ast.AssertStmt{Identity: st.Identity, Kind: st.Kind, Left: left, Right: right}, append(auxL, auxR...)

	case *ast.AssignStmt:
		place, auxP := r.ReconstructExpr(st.Place)
		val, auxV := r.ReconstructExpr(st.Value)
		return &ast.AssignStmt{Identity: st.Identity, Place: place, Op: st.Op, Value: val}, append(auxP, auxV...)

	case *ast.ConditionalStmt:
		cond, auxC := r.ReconstructExpr(st.Cond)
		thenB := r.ReconstructBlock(st.Then)
		var elseB *ast.Block
		if st.Else != nil {
			elseB = r.ReconstructBlock(st.Else)
		}
		return &ast.ConditionalStmt{Identity: st.Identity, Cond: cond, Then: thenB, Else: elseB}, auxC

	case *ast.ConstBindingStmt:
		val, aux := r.ReconstructExpr(st.Value)
		return &ast.ConstBindingStmt{Identity: st.Identity, Name: st.Name, Type: st.Type, Value: val}, aux

	case *ast.DefinitionStmt:
		val, aux := r.ReconstructExpr(st.Value)
		return &ast.DefinitionStmt{Identity: st.Identity, Names: st.Names, Types: st.Types, Value: val}, aux

	case *ast.ExprStmt:
		e, aux := r.ReconstructExpr(st.Expr)
		return &ast.ExprStmt{Identity: st.Identity, Expr: e}, aux

	case *ast.IterationStmt:
		low, auxLo := r.ReconstructExpr(st.Low)
		high, auxHi := r.ReconstructExpr(st.High)
		body := r.ReconstructBlock(st.Body)
		return &ast.IterationStmt{Identity: st.Identity, Name: st.Name, ElemType: st.ElemType, Low: low, High: high, Body: body}, append(auxLo, auxHi...)

	case *ast.ReturnStmt:
		if st.Value == nil {
			return st, nil
		}
		val, aux := r.ReconstructExpr(st.Value)
		return &ast.ReturnStmt{Identity: st.Identity, Value: val}, aux

	case *ast.Block:
		return r.ReconstructBlock(st), nil

	default:
		return s, nil
	}
}

// ReconstructExpr rewrites one expression bottom-up: children are
// reconstructed first (their auxiliary statements bubble up), then the
// caller's ExprVisitor is given a chance to replace the (already
// child-rewritten) node.
func (r *Reconstructor) ReconstructExpr(e ast.Expression) (ast.Expression, []ast.Statement) {
	var aux []ast.Statement
	rewritten := e

	switch ex := e.(type) {
	case *ast.ArrayAccessExpr:
		arr, a1 := r.ReconstructExpr(ex.Array)
		idx, a2 := r.ReconstructExpr(ex.Index)
		aux = append(aux, a1...)
		aux = append(aux, a2...)
		rewritten = &ast.ArrayAccessExpr{Identity: ex.Identity, Array: arr, Index: idx}

	case *ast.MemberAccessExpr:
		obj, a1 := r.ReconstructExpr(ex.Object)
		aux = append(aux, a1...)
		rewritten = &ast.MemberAccessExpr{Identity: ex.Identity, Object: obj, Member: ex.Member}

	case *ast.TupleAccessExpr:
		tup, a1 := r.ReconstructExpr(ex.Tuple)
		aux = append(aux, a1...)
		rewritten = &ast.TupleAccessExpr{Identity: ex.Identity, Tuple: tup, Index: ex.Index}

	case *ast.ArrayCtorExpr:
		elems := make([]ast.Expression, len(ex.Elements))
		for i, el := range ex.Elements {
			ne, a := r.ReconstructExpr(el)
			elems[i] = ne
			aux = append(aux, a...)
		}
		rewritten = &ast.ArrayCtorExpr{Identity: ex.Identity, Elements: elems}

	case *ast.RepeatCtorExpr:
		el, a := r.ReconstructExpr(ex.Element)
		aux = append(aux, a...)
		rewritten = &ast.RepeatCtorExpr{Identity: ex.Identity, Element: el, Count: ex.Count}

	case *ast.BinaryExpr:
		l, a1 := r.ReconstructExpr(ex.Left)
		rt, a2 := r.ReconstructExpr(ex.Right)
		aux = append(aux, a1...)
		aux = append(aux, a2...)
		rewritten = &ast.BinaryExpr{Identity: ex.Identity, Op: ex.Op, Left: l, Right: rt}

	case *ast.UnaryExpr:
		o, a := r.ReconstructExpr(ex.Operand)
		aux = append(aux, a...)
		rewritten = &ast.UnaryExpr{Identity: ex.Identity, Op: ex.Op, Operand: o}

	case *ast.CastExpr:
		o, a := r.ReconstructExpr(ex.Operand)
		aux = append(aux, a...)
		rewritten = &ast.CastExpr{Identity: ex.Identity, Target: ex.Target, Operand: o}

	case *ast.CallExpr:
		args := make([]ast.Expression, len(ex.Args))
		for i, arg := range ex.Args {
			na, a := r.ReconstructExpr(arg)
			args[i] = na
			aux = append(aux, a...)
		}
		rewritten = &ast.CallExpr{Identity: ex.Identity, Kind: ex.Kind, Program: ex.Program, Network: ex.Network, Name: ex.Name, Args: args}

	case *ast.AssociatedFunctionExpr:
		args := make([]ast.Expression, len(ex.Args))
		for i, arg := range ex.Args {
			na, a := r.ReconstructExpr(arg)
			args[i] = na
			aux = append(aux, a...)
		}
		rewritten = &ast.AssociatedFunctionExpr{Identity: ex.Identity, Qualifier: ex.Qualifier, Name: ex.Name, Args: args}

	case *ast.IntrinsicExpr:
		var recv ast.Expression
		if ex.Receiver != nil {
			r2, a := r.ReconstructExpr(ex.Receiver)
			recv = r2
			aux = append(aux, a...)
		}
		args := make([]ast.Expression, len(ex.Args))
		for i, arg := range ex.Args {
			na, a := r.ReconstructExpr(arg)
			args[i] = na
			aux = append(aux, a...)
		}
		rewritten = &ast.IntrinsicExpr{Identity: ex.Identity, Kind: ex.Kind, Variant: ex.Variant, Receiver: recv, Args: args}

	case *ast.CompositeInitExpr:
		vals := make([]ast.Expression, len(ex.Values))
		for i, v := range ex.Values {
			if v == nil {
				continue
			}
			nv, a := r.ReconstructExpr(v)
			vals[i] = nv
			aux = append(aux, a...)
		}
		rewritten = &ast.CompositeInitExpr{Identity: ex.Identity, TypeName: ex.TypeName, Fields: ex.Fields, Values: vals}

	case *ast.TernaryExpr:
		cond, a1 := r.ReconstructExpr(ex.Cond)
		then, a2 := r.ReconstructExpr(ex.Then)
		els, a3 := r.ReconstructExpr(ex.Else)
		aux = append(aux, a1...)
		aux = append(aux, a2...)
		aux = append(aux, a3...)
		rewritten = &ast.TernaryExpr{Identity: ex.Identity, Cond: cond, Then: then, Else: els}

	case *ast.TupleExpr:
		elems := make([]ast.Expression, len(ex.Elements))
		for i, el := range ex.Elements {
			ne, a := r.ReconstructExpr(el)
			elems[i] = ne
			aux = append(aux, a...)
		}
		rewritten = &ast.TupleExpr{Identity: ex.Identity, Elements: elems}

	default:
		// Literal, Path, Locator, AssociatedConstant, Unit, Err: leaves.
		rewritten = e
	}

	if r.Expr != nil {
		if newE, exprAux, handled := r.Expr.VisitExpr(rewritten); handled {
			return newE, append(aux, exprAux...)
		}
	}
	return rewritten, aux
}
