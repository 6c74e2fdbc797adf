// Package diagnostics implements the structured error channel consumed by
// the type checker, the lowering passes and code generation (spec §7).
//
// The shape is grounded on the teacher's analyzer package: a walker
// accumulates *diagnostics.DiagnosticError values via addError/addErrors and
// a caller inspects getErrors() once the walk is done. Here that becomes a
// Sink threaded explicitly through the pipeline instead of living on the
// walker itself, since three separate passes (checker, lowering, codegen)
// all need to report into the same stream.
package diagnostics

import (
	"fmt"

	"github.com/leo-core/leoc/internal/source"
)

// Severity distinguishes a hard failure from advisory information.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Code is a stable classification of a diagnostic, independent of its
// rendered message text. Tests assert on Code, never on message strings,
// mirroring the teacher's analyzer_errors_test.go convention.
type Code string

// Structural
const (
	CodeUnknownSymbol        Code = "unknown-symbol"
	CodeDuplicateMember      Code = "duplicate-member"
	CodeArityMismatch        Code = "incorrect-number-of-arguments"
	CodeMissingStructMember  Code = "missing-struct-member"
	CodeTupleOutOfRange      Code = "tuple-out-of-range"
	CodeArrayEmpty           Code = "array-empty"
	CodeArrayTooLarge        Code = "array-too-large"
	CodeNestedTuple          Code = "nested-tuple"
	CodeDuplicateConstructor Code = "duplicate-constructor"
)

// Typing
const (
	CodeTypeShouldBe               Code = "type-should-be"
	CodeTernaryBranchMismatch       Code = "ternary-branch-mismatch"
	CodeOperationTypesMismatch      Code = "operation-types-mismatch"
	CodePowTypeMismatch             Code = "pow-type-mismatch"
	CodeShiftMagnitude              Code = "shift-magnitude"
	CodeCannotAssignToConst         Code = "cannot-assign-to-const"
	CodeHexBinLiteralOnNonInteger   Code = "hexbin-literal-on-non-integer"
	CodeUnexpectedUnsuffixedNumeral Code = "unexpected-unsuffixed-numeral"
	CodeUnknownNetwork              Code = "unknown-network"
	CodeUnknownIntrinsic            Code = "unknown-intrinsic"
)

// Async discipline
const (
	CodeAsyncCallInConditional          Code = "async-call-in-conditional"
	CodeMustCallAsyncFunctionOnce        Code = "must-call-async-function-once"
	CodeAsyncCallOnlyFromAsyncTransition Code = "async-call-only-from-async-transition"
	CodeExternalCallMustBeBeforeFinalize Code = "external-transition-call-must-be-before-finalize"
	CodeNotAllFuturesConsumed            Code = "not-all-futures-consumed"
	CodeUnknownFutureConsumed            Code = "unknown-future-consumed"
)

// Control flow
const (
	CodeUnreachableAfterReturn  Code = "unreachable-code-after-return"
	CodeLoopBodyContainsReturn Code = "loop-body-contains-return"
	CodeLoopRangeDecreasing    Code = "loop-range-decreasing"
	CodeLoopBoundTypeMismatch  Code = "loop-bound-type-mismatch"
)

// Global
const (
	CodeCyclicStructDependency   Code = "cyclic-struct-dependency"
	CodeCyclicFunctionDependency Code = "cyclic-function-dependency"
	CodeTooManyTransitions       Code = "too-many-transitions"
	CodeTooManyMappings          Code = "too-many-mappings"
	CodeImportedCannotImport     Code = "imported-program-cannot-import"
	CodeStubNameMismatch         Code = "stub-name-mismatch"
)

// Diagnostic is a single structured error or warning with a source span.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Span     source.Span
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s [%s] at %s", d.Severity, d.Message, d.Code, d.Span)
}

// Sink accumulates diagnostics in source order (spec §5, §7). It is the
// only mutable side table every pass is allowed to write to besides the
// type table and the call graph.
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink { return &Sink{} }

// Add records a diagnostic. Passes call this instead of returning errors,
// so that a local failure never aborts the walk (spec §7: "the visitor
// continues with Type::Err").
func (s *Sink) Add(code Code, sev Severity, span source.Span, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{
		Code:     code,
		Severity: sev,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Error is shorthand for Add(code, Error, ...).
func (s *Sink) Error(code Code, span source.Span, format string, args ...any) {
	s.Add(code, Error, span, format, args...)
}

// Diagnostics returns every diagnostic recorded so far, in source order.
func (s *Sink) Diagnostics() []Diagnostic { return s.diags }

// HasErrors reports whether any Error-severity diagnostic was recorded.
// The driver inspects this once per compilation unit: a non-empty result
// means lowering must not run (spec §7).
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
