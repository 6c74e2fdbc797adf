package codegen

import (
	"fmt"

	"github.com/leo-core/leoc/internal/ast"
)

// genBlock emits every statement of b in source order (spec §4.5
// "Ordering. Statements are emitted in source order").
func (g *Generator) genBlock(b *ast.Block) {
	for _, s := range b.Statements {
		g.genStmt(s)
	}
}

func (g *Generator) genStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.AssertStmt:
		g.genAssert(st)

	case *ast.AssignStmt:
		g.genAssign(st)

	case *ast.ConditionalStmt:
		g.genConditional(st)

	case *ast.ConstBindingStmt:
		g.vars[st.Name] = g.materialize(st.Value)

	case *ast.DefinitionStmt:
		g.genDefinition(st)

	case *ast.ExprStmt:
		g.genExpr(st.Expr)

	case *ast.IterationStmt:
		g.genIteration(st)

	case *ast.ReturnStmt:
		if st.Value == nil {
			g.emit(Instr{Op: "output"})
			return
		}
		result := g.operandText(st.Value)
		g.emit(Instr{Op: "output", Args: []string{result}})

	case *ast.Block:
		g.genBlock(st)
	}
}

func (g *Generator) genAssert(st *ast.AssertStmt) {
	left := g.operandText(st.Left)
	switch st.Kind {
	case ast.AssertTrue:
		g.emit(Instr{Op: "assert", Args: []string{left}})
	case ast.AssertEqual:
		g.emit(Instr{Op: "assert.eq", Args: []string{left, g.operandText(st.Right)}})
	case ast.AssertNotEqual:
		g.emit(Instr{Op: "assert.neq", Args: []string{left, g.operandText(st.Right)}})
	}
}

// genAssign implements spec §4.5's "Clone" rule for plain variable
// assignment: the source is cast into a fresh register and the variable
// name is rebound to it. Assignment to storage is handled upstream by
// storage-lowering, which always turns it into a mapping-set ExprStmt
// before code generation ever sees it.
func (g *Generator) genAssign(st *ast.AssignStmt) {
	val := g.operandText(st.Value)
	p, ok := st.Place.(*ast.PathExpr)
	if !ok {
		g.emit(Instr{Op: "store", Args: []string{g.operandText(st.Place), val}})
		return
	}
	dst := g.newReg()
	g.emit(Instr{Op: "cast", Args: []string{val}, Dests: []string{dst.String()}, As: typeText(g.typeOf(st.Value))})
	g.vars[p.Name] = dst
}

func (g *Generator) genDefinition(st *ast.DefinitionStmt) {
	if len(st.Names) == 1 {
		g.vars[st.Names[0]] = g.materialize(st.Value)
		return
	}
	whole := g.genExpr(st.Value)
	for i, name := range st.Names {
		dst := g.newReg()
		g.emit(Instr{Op: "tuple_index", Args: []string{whole.String(), fmt.Sprint(i)}, Dests: []string{dst.String()}})
		g.vars[name] = dst
	}
}

func (g *Generator) genConditional(st *ast.ConditionalStmt) {
	cond := g.operandText(st.Cond)
	elseLabel := g.newLabel()
	endLabel := g.newLabel()

	g.emit(Instr{Op: "jump_if_false", Args: []string{cond, elseLabel}})
	g.genBlock(st.Then)
	if st.Else != nil {
		g.emit(Instr{Op: "jump", Args: []string{endLabel}})
		g.emit(Instr{Op: "label", Args: []string{elseLabel}})
		g.genBlock(st.Else)
		g.emit(Instr{Op: "label", Args: []string{endLabel}})
	} else {
		g.emit(Instr{Op: "label", Args: []string{elseLabel}})
	}
}

// genIteration unrolls nothing: the loop variable is modeled as a register
// that is rebound each iteration, with ordinary label/jump control flow,
// the same "numbered labels plus conditional/unconditional jump" idiom the
// teacher's OP_JUMP/OP_JUMP_IF_FALSE/OP_LOOP triple uses, adapted from
// bytecode offsets to symbolic labels since this stream is textual.
func (g *Generator) genIteration(st *ast.IterationStmt) {
	startLabel := g.newLabel()
	endLabel := g.newLabel()

	g.vars[st.Name] = g.materialize(st.Low)
	highText := g.operandText(st.High)
	step := "1" + typeText(st.ElemType)

	g.emit(Instr{Op: "label", Args: []string{startLabel}})
	cond := g.newReg()
	g.emit(Instr{Op: "lt", Args: []string{g.vars[st.Name].String(), highText}, Dests: []string{cond.String()}})
	g.emit(Instr{Op: "jump_if_false", Args: []string{cond.String(), endLabel}})

	g.genBlock(st.Body)

	next := g.newReg()
	g.emit(Instr{Op: "add", Args: []string{g.vars[st.Name].String(), step}, Dests: []string{next.String()}})
	g.vars[st.Name] = next
	g.emit(Instr{Op: "jump", Args: []string{startLabel}})
	g.emit(Instr{Op: "label", Args: []string{endLabel}})
}
