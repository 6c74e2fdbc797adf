// Package typecheck implements the bidirectional type checker of spec §4.2:
// per-expression visits take an optional expected type, unify the inferred
// type against it, and record the result in a typetable.Table keyed by
// NodeId.
//
// Grounded on the teacher's internal/analyzer package: a walker struct
// carrying the symbol table and an error sink (internal/analyzer/analyzer.go
// "type walker struct"), split by concern across several files the same way
// the teacher splits expressions.go/statements.go/declarations*.go. This
// package's split is expressions.go, statements.go, calls.go, futures.go,
// callgraph.go, structs.go, casts.go, intrinsics.go and manifest.go — narrower than the teacher's split
// because this language has no trait resolution, no Hindley-Milner
// generalization, and no pattern-match exhaustiveness to check.
package typecheck

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/source"
	"github.com/leo-core/leoc/internal/symbols"
	"github.com/leo-core/leoc/internal/typetable"
	"github.com/leo-core/leoc/internal/types"
)

// Checker walks a Program and populates a typetable.Table, reporting
// diagnostics to Sink as it goes (spec §4.2, §4.3 "Failure").
type Checker struct {
	Sink   *diagnostics.Sink
	Types  *typetable.Table
	Global *symbols.Global

	program   *ast.ProgramScope
	fn        *ast.Function
	scope     *symbols.Scope
	callGraph *callGraph
	condDepth int

	// futures tracks the per-scope ordered set of outstanding future
	// names introduced by external-transition calls within the current
	// async transition body (spec §4.2 "Future discipline").
	futures *futureTracker

	asyncFnInputTypes map[symbols.Key][]types.Type
}

// New creates a Checker ready to analyze a whole Program against a
// prebuilt Global symbol table.
func New(global *symbols.Global) *Checker {
	return &Checker{
		Sink:              diagnostics.NewSink(),
		Types:             typetable.New(),
		Global:            global,
		callGraph:         newCallGraph(),
		asyncFnInputTypes: make(map[symbols.Key][]types.Type),
	}
}

// CheckProgram runs analyzeHeaders over every program scope (so calls to
// functions declared later in compile order still resolve), then
// analyzeBodies (spec §2's "type checker ... builds call graph"). This
// two-phase staging mirrors the teacher's AnalyzeHeaders/AnalyzeBodies
// split (internal/analyzer/declarations.go), adapted here to the absence
// of forward-declared modules: every program in a Global is already fully
// known before checking starts, so headers need only validate shape, not
// defer resolution.
func (c *Checker) CheckProgram(prog *ast.Program) {
	for _, scope := range prog.Scopes {
		c.analyzeHeaders(scope)
	}
	for _, scope := range prog.Scopes {
		c.analyzeBodies(scope)
	}
	for _, scope := range prog.Scopes {
		c.checkCallGraphAcyclic(scope)
	}
	c.checkImportedCannotImport(prog)
}

// checkImportedCannotImport rejects a program that is itself imported by
// another scope yet declares imports of its own (spec §7
// "imported-program-cannot-import", grounded on the original's
// imported_program_cannot_import_program rule: a dependency sits one level
// deep and may not pull in further dependencies).
func (c *Checker) checkImportedCannotImport(prog *ast.Program) {
	imported := make(map[string]bool)
	for _, scope := range prog.Scopes {
		for _, imp := range scope.Imports {
			imported[imp] = true
		}
	}
	for _, scope := range prog.Scopes {
		if imported[scope.Program] && len(scope.Imports) > 0 {
			c.Sink.Error(diagnostics.CodeImportedCannotImport, scope.Span(), "imported program %s may not itself declare imports", scope.Program)
		}
	}
}

// analyzeHeaders validates struct shape and acyclicity, the mapping and
// transition count limits, and constructor uniqueness, without descending
// into function bodies; storage declarations are not examined (spec §4.2
// structural checks, §7 "too-many-transitions", "too-many-mappings").
func (c *Checker) analyzeHeaders(scope *ast.ProgramScope) {
	c.program = scope

	if len(scope.Mappings) > 31 {
		c.Sink.Error(diagnostics.CodeTooManyMappings, scope.Span(), "program %s declares more than 31 mappings", scope.Program)
	}
	transitions := 0
	for _, fn := range scope.Functions {
		if fn.Variant == ast.VariantTransition || fn.Variant == ast.VariantAsyncTransition {
			transitions++
		}
	}
	if transitions > 31 {
		c.Sink.Error(diagnostics.CodeTooManyTransitions, scope.Span(), "program %s declares more than 31 transitions", scope.Program)
	}

	for _, st := range scope.Structs {
		c.checkStructShape(st)
	}
	c.checkStructAcyclic(scope)

	for _, extra := range scope.Constructors[min(1, len(scope.Constructors)):] {
		c.Sink.Error(diagnostics.CodeDuplicateConstructor, extra.Span(), "program %s declares more than one constructor", scope.Program)
	}
}

// analyzeBodies type-checks every function body in scope, then the
// constructor if present.
func (c *Checker) analyzeBodies(scope *ast.ProgramScope) {
	c.program = scope
	for _, fn := range scope.Functions {
		c.checkFunction(fn)
	}
	if ctor := scope.Constructor(); ctor != nil {
		c.fn = nil
		c.scope = symbols.NewScope(nil)
		c.futures = newFutureTracker()
		c.checkBlock(ctor.Body)
	}
}

func (c *Checker) checkFunction(fn *ast.Function) {
	c.fn = fn
	c.scope = symbols.NewScope(nil)
	c.futures = newFutureTracker()

	for _, cp := range fn.ConstParams {
		c.scope.Define(symbols.Symbol{Name: cp.Name, Kind: symbols.KindConstParam, Type: types.NewInteger(types.IntegerKind{Width: types.W32, Signedness: types.Unsigned})})
	}
	for _, in := range fn.Inputs {
		c.scope.Define(symbols.Symbol{Name: in.Name, Kind: symbols.KindVariable, Type: in.Type, Mutable: false})
	}

	c.callGraph.addNode(key(c.program.Program, fn.Name))
	c.checkBlock(fn.Body)

	if fn.Variant == ast.VariantAsyncTransition {
		if !c.futures.empty() {
			c.Sink.Error(diagnostics.CodeNotAllFuturesConsumed, fn.Span(), "transition %s does not consume all produced futures", fn.Name)
		}
		if c.futures.asyncCalls != 1 {
			c.Sink.Error(diagnostics.CodeMustCallAsyncFunctionOnce, fn.Span(), "async transition %s must call exactly one async function, found %d", fn.Name, c.futures.asyncCalls)
		}
	}
}

func key(program, name string) symbols.Key { return symbols.Key{Program: program, Name: name} }

// unify wraps types.Unify, emitting CodeTypeShouldBe on mismatch.
func (c *Checker) unify(span source.Span, expected, inferred types.Type) types.Type {
	resolved, ok := types.Unify(expected, inferred)
	if !ok {
		c.Sink.Error(diagnostics.CodeTypeShouldBe, span, "expected type %s, found %s", expected, inferred)
		return types.Err
	}
	return resolved
}
