// Package pipeline wires the checker, the storage-lowering pass and code
// generation into the single ordered run spec §2 describes: symbol
// table, then type checking, then (if clean) lowering, then codegen per
// function. Grounded on the teacher's internal/pipeline.Pipeline — a
// small ordered sequence of stages run over one shared context — adapted
// here to this compiler's fixed, non-pluggable stage order, so Compile is
// a single function rather than a slice of generic Processors.
package pipeline

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/codegen"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/lowering"
	"github.com/leo-core/leoc/internal/manifest"
	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/symbols"
	"github.com/leo-core/leoc/internal/typecheck"
	"github.com/leo-core/leoc/internal/typetable"
)

// FunctionChunk pairs a compiled function with the program it belongs to,
// for reporting and for cmd/leoc's disassembly output.
type FunctionChunk struct {
	Program  string
	Function string
	Chunk    *codegen.Chunk
}

// Result is the outcome of one compilation run: diagnostics from
// checking (always populated), and chunks (only populated when checking
// found no errors, per spec §2 "lowering and codegen run only if type
// checking reported no errors").
type Result struct {
	Sink   *diagnostics.Sink
	Types  *typetable.Table
	Chunks []FunctionChunk
}

// Compile runs the full pipeline over prog. ids must be the same
// nodeid.Builder used to construct prog, so that storage-lowering's fresh
// synthesized nodes continue the same identity sequence (spec §3.1 "node
// identity is assigned once, by whatever produced the node, and never
// reused"). man is the parsed program manifest for prog's main scope (the
// last entry in prog.Scopes); pass nil when no manifest applies (e.g. a
// fixture with no dependencies worth declaring).
func Compile(ids *nodeid.Builder, prog *ast.Program, man *manifest.Manifest) *Result {
	global := symbols.Build(prog)

	checker := typecheck.New(global)
	checker.CheckProgram(prog)
	if man != nil && len(prog.Scopes) > 0 {
		main := prog.Scopes[len(prog.Scopes)-1]
		checker.CheckManifest(man, main.Span(), global.Order[:len(global.Order)-1])
	}

	result := &Result{Sink: checker.Sink, Types: checker.Types}
	if checker.Sink.HasErrors() {
		return result
	}

	lowered := lowering.NewPass(ids, checker.Types).LowerProgram(prog)

	for _, scope := range lowered.Scopes {
		for _, fn := range scope.Functions {
			gen := codegen.New(checker.Types, global)
			chunk := gen.GenerateFunction(scope.Program, fn)
			result.Chunks = append(result.Chunks, FunctionChunk{Program: scope.Program, Function: fn.Name, Chunk: chunk})
		}
	}
	return result
}
