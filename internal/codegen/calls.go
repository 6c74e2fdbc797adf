package codegen

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/types"
)

// genCall implements spec §4.5 "Call to local function" / "Call to
// external transition": arguments are materialized into registers first,
// then one destination register is allocated per element of the callee's
// output type (a Tuple output gets one register per element).
func (g *Generator) genCall(ex *ast.CallExpr) Reg {
	args := make([]string, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = g.materialize(a).String()
	}

	resultT := g.typeOf(ex)
	var dests []Reg
	if tup, ok := resultT.(types.Tuple); ok {
		dests = make([]Reg, len(tup.Elems))
		for i := range dests {
			dests[i] = g.newReg()
		}
	} else {
		dests = []Reg{g.newReg()}
	}

	name := ex.Name
	if ex.Kind == ast.CallExternalTransition {
		name = ex.Program + "/" + ex.Name
	}
	destTexts := make([]string, len(dests))
	for i, d := range dests {
		destTexts[i] = d.String()
	}
	g.emit(Instr{Op: "call", Args: append([]string{name}, args...), Dests: destTexts})
	return dests[0]
}
