// Command leoc compiles its built-in seed program (spec §8's S1
// scenario) end to end through checking, storage-lowering and
// code generation, printing the resulting disassembly or the diagnostics
// that stopped it.
//
// There is no lexer/parser in this module (spec.md's Non-goals, restated
// unchanged by SPEC_FULL.md): programs live here as Go-literal AST
// fixtures rather than source text, the same way internal/lowering and
// internal/pipeline's own tests build theirs.
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/codegen"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/pipeline"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

var u8Kind = types.IntegerKind{Width: types.W8, Signedness: types.Unsigned}
var u8Type = types.NewInteger(u8Kind)

func main() {
	runID := uuid.New()
	color := isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

	ids := nodeid.NewBuilder()
	prog := seedProgram(ids)

	result := pipeline.Compile(ids, prog, nil)

	if result.Sink.HasErrors() {
		printDiagnostics(os.Stderr, runID, result.Sink.Diagnostics(), color)
		os.Exit(1)
	}

	fmt.Printf("run %s: %d function(s) compiled\n", runID, len(result.Chunks))
	for _, fc := range result.Chunks {
		name := fc.Program + "/" + fc.Function
		fmt.Print(codegen.Disassemble(fc.Chunk, name))
	}
}

func printDiagnostics(w *os.File, runID uuid.UUID, diags []diagnostics.Diagnostic, color bool) {
	for _, d := range diags {
		if color {
			fmt.Fprintf(w, "\x1b[31m%s\x1b[0m [run %s] %s\n", d.Severity, runID, d)
		} else {
			fmt.Fprintf(w, "%s [run %s] %s\n", d.Severity, runID, d)
		}
	}
}

// seedProgram builds spec §8 scenario S1: a single-transition program
// whose body returns 200u8 + 100u8.
func seedProgram(ids *nodeid.Builder) *ast.Program {
	id := func() ast.Identity { return ast.Identity{Id: ids.Next()} }
	lit := func(n int64) *ast.LiteralExpr {
		return &ast.LiteralExpr{Identity: id(), Value: value.Int{Kind: u8Kind, Mag: big.NewInt(n)}}
	}

	add := &ast.BinaryExpr{Identity: id(), Op: ast.OpAdd, Left: lit(200), Right: lit(100)}
	ret := &ast.ReturnStmt{Identity: id(), Value: add}
	body := &ast.Block{Identity: id(), Statements: []ast.Statement{ret}}
	fn := &ast.Function{
		Identity: id(), Name: "sum", Variant: ast.VariantTransition,
		Outputs: []types.Type{u8Type}, OutputType: u8Type, Body: body,
	}
	scope := &ast.ProgramScope{Identity: id(), Program: "seed", Network: "aleo", Functions: []*ast.Function{fn}}
	return &ast.Program{Identity: id(), Scopes: []*ast.ProgramScope{scope}}
}
