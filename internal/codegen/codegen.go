package codegen

import (
	"fmt"

	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/symbols"
	"github.com/leo-core/leoc/internal/typetable"
	"github.com/leo-core/leoc/internal/types"
)

// Generator turns one function body into a Chunk. GenerateFunction resets
// the register, label and variable state at the start of every call, so
// registers are numbered from zero per function, matching spec §4.5
// "Registers are numbered sequentially per function".
type Generator struct {
	Types   *typetable.Table
	Global  *symbols.Global
	program string

	regs   int
	labels int
	vars   map[string]Reg
	instrs []Instr
}

// New builds a Generator sharing the type table and global symbol table
// with the rest of the compilation.
func New(types *typetable.Table, global *symbols.Global) *Generator {
	return &Generator{Types: types, Global: global}
}

// GenerateFunction compiles one (already type-checked, already
// storage-lowered) function body into a Chunk.
func (g *Generator) GenerateFunction(program string, fn *ast.Function) *Chunk {
	g.program = program
	g.regs = 0
	g.labels = 0
	g.vars = make(map[string]Reg)
	g.instrs = nil

	for _, in := range fn.Inputs {
		g.vars[in.Name] = g.newReg()
	}
	for _, cp := range fn.ConstParams {
		g.vars[cp.Name] = g.newReg()
	}

	g.genBlock(fn.Body)
	return &Chunk{Instrs: g.instrs}
}

func (g *Generator) newReg() Reg {
	r := Reg(g.regs)
	g.regs++
	return r
}

func (g *Generator) emit(in Instr) {
	g.instrs = append(g.instrs, in)
}

func (g *Generator) newLabel() string {
	g.labels++
	return fmt.Sprintf("L%d", g.labels)
}

func (g *Generator) typeOf(e ast.Expression) types.Type {
	return g.Types.MustGet(e.NodeId())
}

// typeText renders t the way spec §4.5/§8 S6 render a cast's target type:
// array lengths carry the u32 suffix ("[u8; 3u32]") since the length is
// itself a const-evaluated u32 value; every other type uses its ordinary
// String() form.
func typeText(t types.Type) string {
	if arr, ok := t.(types.Array); ok {
		return fmt.Sprintf("[%s; %du32]", typeText(arr.Elem), arr.Length.Value)
	}
	return t.String()
}
