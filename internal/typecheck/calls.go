package typecheck

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/types"
)

// checkCall resolves a CallExpr against the symbol table, checks arity,
// re-checks each argument against its parameter type, and applies the
// async/future discipline of spec §4.2 when the callee is a transition or
// async function.
func (c *Checker) checkCall(e *ast.CallExpr) types.Type {
	switch e.Kind {
	case ast.CallLocal:
		return c.checkLocalCall(e)
	case ast.CallExternalTransition:
		return c.checkExternalCall(e)
	default:
		return c.checkLocalCall(e)
	}
}

func (c *Checker) checkLocalCall(e *ast.CallExpr) types.Type {
	fn := c.program.FindFunction(e.Name)
	if fn == nil {
		c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "unknown function %s", e.Name)
		return types.Err
	}
	c.callGraph.addEdge(key(c.program.Program, c.fn.Name), key(c.program.Program, fn.Name), e.Span())

	if fn.Variant == ast.VariantAsyncFunction {
		return c.checkAsyncFunctionCall(e, fn)
	}

	result := c.checkArgs(e, fn)
	return result
}

func (c *Checker) checkExternalCall(e *ast.CallExpr) types.Type {
	scope, ok := c.Global.Program(e.Program)
	if !ok {
		c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "unknown program %s", e.Program)
		return types.Err
	}
	fn := scope.FindFunction(e.Name)
	if fn == nil {
		c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "unknown transition %s/%s", e.Program, e.Name)
		return types.Err
	}
	if c.fn == nil || c.fn.Variant != ast.VariantAsyncTransition {
		c.Sink.Error(diagnostics.CodeAsyncCallOnlyFromAsyncTransition, e.Span(), "external transition call to %s/%s is only legal inside an async transition", e.Program, e.Name)
	}
	if c.futures.asyncCalls > 0 {
		c.Sink.Error(diagnostics.CodeExternalCallMustBeBeforeFinalize, e.Span(), "external transition call to %s/%s must occur before the local async function call", e.Program, e.Name)
	}

	result := c.checkArgs(e, fn)
	if fn.Variant == ast.VariantAsyncTransition {
		return types.Future{Inputs: c.asyncFnInputTypes[key(e.Program, fn.Name)], Origin: e.Program, Inferred: true}
	}
	return result
}

// checkAsyncFunctionCall implements the "exactly one local async call,
// never inside a conditional, futures consumed in order" rules (spec
// §4.2, §7, §8 invariant 7).
func (c *Checker) checkAsyncFunctionCall(e *ast.CallExpr, fn *ast.Function) types.Type {
	c.futures.asyncCalls++
	if c.condDepth > 0 {
		c.Sink.Error(diagnostics.CodeAsyncCallInConditional, e.Span(), "async function %s may not be called inside a conditional", e.Name)
	}

	names := make([]string, 0, len(e.Args))
	for i, arg := range e.Args {
		var expected types.Type
		if i < len(fn.Inputs) {
			expected = fn.Inputs[i].Type
		}
		c.checkExpr(arg, expected)
		if p, ok := arg.(*ast.PathExpr); ok {
			names = append(names, p.Name)
		} else {
			names = append(names, "")
		}
	}
	if len(e.Args) != len(fn.Inputs) {
		c.Sink.Error(diagnostics.CodeArityMismatch, e.Span(), "%s expects %d arguments, got %d", e.Name, len(fn.Inputs), len(e.Args))
	}
	if bad := c.futures.consume(names); bad >= 0 {
		c.Sink.Error(diagnostics.CodeUnknownFutureConsumed, e.Span(), "async call to %s does not consume the outstanding futures in order", e.Name)
	}

	inputs := make([]types.Type, len(fn.Inputs))
	for i, in := range fn.Inputs {
		inputs[i] = in.Type
	}
	c.asyncFnInputTypes[key(c.program.Program, fn.Name)] = inputs

	if len(fn.Outputs) == 0 {
		return types.Unit
	}
	if len(fn.Outputs) == 1 {
		return fn.Outputs[0]
	}
	return types.Tuple{Elems: fn.Outputs}
}

// checkArgs re-checks a call's arguments against the callee's declared
// input types (spec §4.2 "For each parameter, re-check the argument with
// the parameter type as expected") and returns the callee's output type,
// adding one extra destination slot's worth of Future wrapping when the
// callee is itself async (handled by the caller, not here).
func (c *Checker) checkArgs(e *ast.CallExpr, fn *ast.Function) types.Type {
	if len(e.Args) != len(fn.Inputs) {
		c.Sink.Error(diagnostics.CodeArityMismatch, e.Span(), "%s expects %d arguments, got %d", e.Name, len(fn.Inputs), len(e.Args))
		return types.Err
	}
	for i, arg := range e.Args {
		c.checkExpr(arg, fn.Inputs[i].Type)
	}
	switch len(fn.Outputs) {
	case 0:
		return types.Unit
	case 1:
		return fn.Outputs[0]
	default:
		return types.Tuple{Elems: fn.Outputs}
	}
}
