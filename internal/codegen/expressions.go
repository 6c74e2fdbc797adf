package codegen

import (
	"strconv"

	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/value"
)

// operandText renders e as an instruction operand without necessarily
// materializing it into a fresh register: a literal is rendered as its
// canonical text and a local variable as the register it already lives in
// (spec §8 S1: "add 200u8 100u8 into r0" uses the literals directly, no
// preceding load). Anything else is evaluated first and its destination
// register is used as the operand text.
func (g *Generator) operandText(e ast.Expression) string {
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return value.CanonicalText(ex.Value)
	case *ast.PathExpr:
		if r, ok := g.vars[ex.Name]; ok {
			return r.String()
		}
		return ex.Name
	default:
		return g.genExpr(e).String()
	}
}

// materialize forces e into a register, even a literal (spec §8 S6:
// "evaluating the three literals into registers r0, r1, r2" before an
// array cast, unlike a binary op's bare operand text).
func (g *Generator) materialize(e ast.Expression) Reg {
	if lit, ok := e.(*ast.LiteralExpr); ok {
		dst := g.newReg()
		g.emit(Instr{Op: "const", Args: []string{value.CanonicalText(lit.Value)}, Dests: []string{dst.String()}})
		return dst
	}
	if p, ok := e.(*ast.PathExpr); ok {
		if r, ok := g.vars[p.Name]; ok {
			return r
		}
	}
	return g.genExpr(e)
}

// genExpr emits e's instructions and returns the register holding its
// result.
func (g *Generator) genExpr(e ast.Expression) Reg {
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return g.materialize(ex)

	case *ast.PathExpr:
		if r, ok := g.vars[ex.Name]; ok {
			return r
		}
		// A global const or storage-mapping reference: load it by name.
		dst := g.newReg()
		g.emit(Instr{Op: "load", Args: []string{ex.Name}, Dests: []string{dst.String()}})
		return dst

	case *ast.BinaryExpr:
		return g.genBinary(ex)

	case *ast.UnaryExpr:
		return g.genUnary(ex)

	case *ast.CastExpr:
		src := g.materialize(ex.Operand)
		dst := g.newReg()
		g.emit(Instr{Op: "cast", Args: []string{src.String()}, Dests: []string{dst.String()}, As: typeText(ex.Target)})
		return dst

	case *ast.ArrayCtorExpr:
		args := make([]string, len(ex.Elements))
		for i, el := range ex.Elements {
			args[i] = g.materialize(el).String()
		}
		dst := g.newReg()
		g.emit(Instr{Op: "cast", Args: args, Dests: []string{dst.String()}, As: typeText(g.typeOf(ex))})
		return dst

	case *ast.RepeatCtorExpr:
		elem := g.materialize(ex.Element).String()
		args := make([]string, ex.Count)
		for i := range args {
			args[i] = elem
		}
		dst := g.newReg()
		g.emit(Instr{Op: "cast", Args: args, Dests: []string{dst.String()}, As: typeText(g.typeOf(ex))})
		return dst

	case *ast.CompositeInitExpr:
		return g.genCompositeInit(ex)

	case *ast.TupleExpr:
		args := make([]string, len(ex.Elements))
		for i, el := range ex.Elements {
			args[i] = g.materialize(el).String()
		}
		dst := g.newReg()
		g.emit(Instr{Op: "cast", Args: args, Dests: []string{dst.String()}, As: typeText(g.typeOf(ex))})
		return dst

	case *ast.ArrayAccessExpr:
		arr := g.operandText(ex.Array)
		idx := g.operandText(ex.Index)
		dst := g.newReg()
		g.emit(Instr{Op: "index", Args: []string{arr, idx}, Dests: []string{dst.String()}})
		return dst

	case *ast.MemberAccessExpr:
		obj := g.operandText(ex.Object)
		dst := g.newReg()
		g.emit(Instr{Op: "member", Args: []string{obj, ex.Member}, Dests: []string{dst.String()}})
		return dst

	case *ast.TupleAccessExpr:
		tup := g.operandText(ex.Tuple)
		dst := g.newReg()
		g.emit(Instr{Op: "tuple_index", Args: []string{tup, strconv.Itoa(ex.Index)}, Dests: []string{dst.String()}})
		return dst

	case *ast.TernaryExpr:
		cond := g.operandText(ex.Cond)
		then := g.operandText(ex.Then)
		els := g.operandText(ex.Else)
		dst := g.newReg()
		g.emit(Instr{Op: "select", Args: []string{cond, then, els}, Dests: []string{dst.String()}})
		return dst

	case *ast.CallExpr:
		return g.genCall(ex)

	case *ast.IntrinsicExpr:
		return g.genIntrinsic(ex)

	case *ast.AssociatedConstantExpr:
		dst := g.newReg()
		g.emit(Instr{Op: "const", Args: []string{ex.Qualifier + "::" + ex.Name}, Dests: []string{dst.String()}})
		return dst

	case *ast.AssociatedFunctionExpr:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = g.materialize(a).String()
		}
		dst := g.newReg()
		g.emit(Instr{Op: ex.Qualifier + "." + ex.Name, Args: args, Dests: []string{dst.String()}})
		return dst

	case *ast.LocatorExpr:
		dst := g.newReg()
		g.emit(Instr{Op: "const", Args: []string{ex.Program + ".aleo/" + ex.Name}, Dests: []string{dst.String()}})
		return dst

	case *ast.UnitExpr:
		dst := g.newReg()
		g.emit(Instr{Op: "const", Args: []string{"()"}, Dests: []string{dst.String()}})
		return dst

	default:
		return g.newReg()
	}
}

func (g *Generator) genBinary(ex *ast.BinaryExpr) Reg {
	l := g.operandText(ex.Left)
	r := g.operandText(ex.Right)
	dst := g.newReg()
	g.emit(Instr{Op: binaryOpName(ex.Op), Args: []string{l, r}, Dests: []string{dst.String()}})
	return dst
}

func (g *Generator) genUnary(ex *ast.UnaryExpr) Reg {
	operand := g.operandText(ex.Operand)
	dst := g.newReg()
	g.emit(Instr{Op: unaryOpName(ex.Op), Args: []string{operand}, Dests: []string{dst.String()}})
	return dst
}

// genCompositeInit looks the struct up by canonical definition order (spec
// §4.5 "Member order matches the definition"): the checker validates
// member completeness but, deliberately, does not reorder the AST itself,
// so codegen re-resolves the declaration to get that order.
func (g *Generator) genCompositeInit(ex *ast.CompositeInitExpr) Reg {
	var fields []ast.FieldDecl
	if scope, ok := g.Global.Program(g.program); ok {
		if sd := scope.FindStruct(ex.TypeName); sd != nil {
			fields = sd.Fields
		}
	}
	provided := make(map[string]ast.Expression, len(ex.Fields))
	for i, name := range ex.Fields {
		provided[name] = ex.Values[i]
	}
	var args []string
	if fields != nil {
		args = make([]string, len(fields))
		for i, f := range fields {
			args[i] = g.materialize(provided[f.Name]).String()
		}
	} else {
		args = make([]string, len(ex.Values))
		for i, v := range ex.Values {
			args[i] = g.materialize(v).String()
		}
	}
	dst := g.newReg()
	g.emit(Instr{Op: "cast", Args: args, Dests: []string{dst.String()}, As: typeText(g.typeOf(ex))})
	return dst
}
