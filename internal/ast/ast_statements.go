package ast

import "github.com/leo-core/leoc/internal/types"

// AssertKind distinguishes the three assertion forms of spec §3.3.
type AssertKind int

const (
	AssertTrue AssertKind = iota
	AssertEqual
	AssertNotEqual
)

// AssertStmt is `assert(e)`, `assert_eq(a, b)` or `assert_neq(a, b)`.
type AssertStmt struct {
	Identity
	Kind  AssertKind
	Left  Expression
	Right Expression // nil for AssertTrue
}

func (*AssertStmt) statementNode() {}

// AssignOp is the operator of a compound assignment; AssignPlain marks a
// plain `place = rhs` with no operator.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignRem
	AssignPow
	AssignAnd
	AssignOr
	AssignXor
	AssignShl
	AssignShr
)

// AssignStmt is an assignment to an existing mutable place. Compound forms
// (`place += rhs`) are desugared by the parser-facing layer into
// `place = place op rhs` before the checker ever sees them (spec §3.3
// "compound assignment operators desugar to `place = place op rhs` before
// type checking"); Op is retained here only to describe which operator was
// desugared, for diagnostics that want to quote the original surface form.
type AssignStmt struct {
	Identity
	Place Expression
	Op    AssignOp
	Value Expression
}

func (*AssignStmt) statementNode() {}

// ConditionalStmt is `if cond { then } [else { else }]` (spec §3.3); Else
// is nil when there is no else branch. An `else if` chain is represented
// by Else containing a Block whose sole statement is another
// ConditionalStmt.
type ConditionalStmt struct {
	Identity
	Cond Expression
	Then *Block
	Else *Block
}

func (*ConditionalStmt) statementNode() {}

// ConstBindingStmt is a local `const name: Type = expr;` (spec §3.3),
// distinct from ConstDecl which binds at program scope.
type ConstBindingStmt struct {
	Identity
	Name  string
	Type  types.Type // nil if inferred from Value
	Value Expression
}

func (*ConstBindingStmt) statementNode() {}

// DefinitionStmt is a `let` binding. Names has one entry for a single
// place (`let x: T = e;`) and more than one for a destructuring tuple
// place (`let (a, b) = e;`); Types has the same length as Names, with nil
// entries where the corresponding name's type was not annotated and must
// be inferred from Value (spec §3.3, §4.2).
type DefinitionStmt struct {
	Identity
	Names []string
	Types []types.Type
	Value Expression
}

func (*DefinitionStmt) statementNode() {}

// ExprStmt evaluates Expr for its side effect (a call or intrinsic) and
// discards any result (spec §3.3).
type ExprStmt struct {
	Identity
	Expr Expression
}

func (*ExprStmt) statementNode() {}

// IterationStmt is a `for i: T in lo..hi { body }` loop over a half-open
// integer range (spec §3.3, §4.2 "loop bound type mismatch",
// "decreasing range"). ElemType is nil when the element type is inferred
// from Low/High.
type IterationStmt struct {
	Identity
	Name     string
	ElemType types.Type
	Low      Expression
	High     Expression
	Body     *Block
}

func (*IterationStmt) statementNode() {}

// ReturnStmt returns Value (which is a TupleExpr for multi-output
// functions, or nil for a Unit-returning function) from the enclosing
// Function (spec §3.3, §4.2 "unreachable after return",
// "loop body contains return").
type ReturnStmt struct {
	Identity
	Value Expression
}

func (*ReturnStmt) statementNode() {}
