package ast

import (
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

// BinaryOp enumerates the binary operators of spec §3.3/§4.2.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpPow
	OpAnd // bitwise &
	OpOr  // bitwise |
	OpXor
	OpShl
	OpShr
	OpLAnd // logical &&
	OpLOr  // logical ||
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot           // bitwise/logical not
	OpAbs
	OpAbsWrapped
	OpNegWrapped
	OpSquare
	OpSquareRoot
	OpDoubleGroup
	OpInverse
)

// LiteralExpr is a typed literal, or an Unsuffixed literal string awaiting
// resolution (spec §3.4, §4.1, §4.3 invariant 3).
type LiteralExpr struct {
	Identity
	Value value.Value
}

func (*LiteralExpr) expressionNode() {}

// PathExpr is a bare identifier looked up first in local scope, then in
// the current program scope (spec §4.2).
type PathExpr struct {
	Identity
	Name string
}

func (*PathExpr) expressionNode() {}

// LocatorExpr is a cross-program reference `program.aleo/name` (spec §3.3,
// GLOSSARY).
type LocatorExpr struct {
	Identity
	Program string
	Network string
	Name    string
}

func (*LocatorExpr) expressionNode() {}

// ArrayAccessExpr indexes an array.
type ArrayAccessExpr struct {
	Identity
	Array Expression
	Index Expression
}

func (*ArrayAccessExpr) expressionNode() {}

// MemberAccessExpr is `.field` access, including the `self.*`/`block.*`/
// `network.*` intrinsic members (spec §4.2).
type MemberAccessExpr struct {
	Identity
	Object Expression
	Member string
}

func (*MemberAccessExpr) expressionNode() {}

// TupleAccessExpr is `.N` positional access into a tuple.
type TupleAccessExpr struct {
	Identity
	Tuple Expression
	Index int
}

func (*TupleAccessExpr) expressionNode() {}

// ArrayCtorExpr is an array literal `[e1, ..., en]`.
type ArrayCtorExpr struct {
	Identity
	Elements []Expression
}

func (*ArrayCtorExpr) expressionNode() {}

// RepeatCtorExpr is `[e; n]`: evaluate e once, repeat it n times (spec
// §4.5 "n must be statically known").
type RepeatCtorExpr struct {
	Identity
	Element Expression
	Count   int64
}

func (*RepeatCtorExpr) expressionNode() {}

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Identity
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (*BinaryExpr) expressionNode() {}

// UnaryExpr is a unary operator application.
type UnaryExpr struct {
	Identity
	Op      UnaryOp
	Operand Expression
}

func (*UnaryExpr) expressionNode() {}

// CastExpr casts Operand to Target (spec §3.3, §4.2).
type CastExpr struct {
	Identity
	Target  types.Type
	Operand Expression
}

func (*CastExpr) expressionNode() {}

// CallKind distinguishes the three call-site shapes of spec §3.3.
type CallKind int

const (
	CallLocal CallKind = iota
	CallExternalTransition
	CallAsyncFunction
)

// CallExpr is a call to a local function/transition, an external
// transition, or (during lowering/codegen) an async function (spec §4.2
// "Call").
type CallExpr struct {
	Identity
	Kind    CallKind
	Program string // non-empty only for CallExternalTransition
	Network string
	Name    string
	Args    []Expression
}

func (*CallExpr) expressionNode() {}

// AssociatedConstantExpr is `Type::CONST` (spec §3.3, §3.2 Identifier).
type AssociatedConstantExpr struct {
	Identity
	Qualifier string
	Name      string
}

func (*AssociatedConstantExpr) expressionNode() {}

// AssociatedFunctionExpr is `Type::func(args)` (e.g. `BHP256::hash`).
type AssociatedFunctionExpr struct {
	Identity
	Qualifier string
	Name      string
	Args      []Expression
}

func (*AssociatedFunctionExpr) expressionNode() {}

// IntrinsicKind enumerates the language-level intrinsics of spec §4.4/§4.5
// (mapping ops, Vector ops, hashing/commitment, random, future await).
type IntrinsicKind int

const (
	IntrinsicMappingGet IntrinsicKind = iota
	IntrinsicMappingGetOrUse
	IntrinsicMappingSet
	IntrinsicMappingRemove
	IntrinsicMappingContains
	IntrinsicVectorLen
	IntrinsicVectorPush
	IntrinsicVectorPop
	IntrinsicVectorGet
	IntrinsicVectorSet
	IntrinsicVectorClear
	IntrinsicVectorSwapRemove
	IntrinsicHash
	IntrinsicCommit
	IntrinsicChaChaRand
	IntrinsicAwait
)

// IntrinsicExpr is a call to one of the language-level intrinsics above.
// Variant carries the hash/commitment algorithm name (e.g. "bhp256") for
// IntrinsicHash/IntrinsicCommit, and the ecdsa-style variant name when the
// intrinsic is an unresolved/unknown cryptographic variant (spec §9 open
// question: unknown variants are reported as an error, never emitted as an
// opaque opcode).
type IntrinsicExpr struct {
	Identity
	Kind     IntrinsicKind
	Variant  string
	Receiver Expression // the mapping/vector/future this intrinsic targets
	Args     []Expression
}

func (*IntrinsicExpr) expressionNode() {}

// CompositeInitExpr constructs a struct or record value (spec §3.3, §4.2,
// §4.5 "Struct/record initializer").
type CompositeInitExpr struct {
	Identity
	TypeName string
	Fields   []string
	Values   []Expression // Values[i] is nil for shorthand `{ a }` field i
}

func (*CompositeInitExpr) expressionNode() {}

// TernaryExpr is `cond ? then : else` (spec §4.2).
type TernaryExpr struct {
	Identity
	Cond Expression
	Then Expression
	Else Expression
}

func (*TernaryExpr) expressionNode() {}

// TupleExpr constructs an anonymous tuple of two or more elements (spec
// §3.4 invariant).
type TupleExpr struct {
	Identity
	Elements []Expression
}

func (*TupleExpr) expressionNode() {}

// UnitExpr is the sole value of Unit type, `()`.
type UnitExpr struct {
	Identity
}

func (*UnitExpr) expressionNode() {}

// ErrExpr replaces an expression that failed to type-check (spec §7): it
// always carries types.Err in the type table.
type ErrExpr struct {
	Identity
}

func (*ErrExpr) expressionNode() {}

// NoneExpr is the `none` literal: the absent case of an Optional<T>,
// written only on the right-hand side of an assignment to implicit-Optional
// storage (spec §3.4, §4.4.1). Its type is Optional<T> for whatever T the
// assignment target expects.
type NoneExpr struct {
	Identity
}

func (*NoneExpr) expressionNode() {}
