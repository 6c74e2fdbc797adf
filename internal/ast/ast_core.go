// Package ast implements the immutable, owning typed AST of spec §3.
//
// This package is adapted from the teacher's internal/ast: the same
// Node/Statement/Expression interface split and Visitor double-dispatch
// shape, but every node additionally carries the Identity (NodeId + Span)
// required by spec §3.1/§3.5, and — critically — no node carries its own
// inferred Type field the way the teacher's nodes don't either: types live
// out-of-band in internal/typetable, keyed by NodeId, exactly mirroring the
// teacher analyzer's `TypeMap map[ast.Node]typesystem.Type` side table
// (spec §9 design note "keep a side table NodeId -> Type").
package ast

import (
	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/source"
	"github.com/leo-core/leoc/internal/types"
)

// Identity is embedded in every node and supplies NodeId()/Span().
type Identity struct {
	Id  nodeid.Id
	Spn source.Span
}

func (i Identity) NodeId() nodeid.Id  { return i.Id }
func (i Identity) Span() source.Span  { return i.Spn }

// Node is the base interface every AST node satisfies.
type Node interface {
	NodeId() nodeid.Id
	Span() source.Span
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node that has no value.
type Statement interface {
	Node
	statementNode()
}

// Block owns an ordered sequence of statements (spec §3.3 "A Block owns an
// ordered sequence of statements and a scope"). The scope itself is built
// by the symbol table from this sequence; Block does not carry it directly
// so the AST stays free of back-references into the symbol table (spec
// §3.5, §9 "cross-referential symbol resolution").
type Block struct {
	Identity
	Statements []Statement
}

func (*Block) statementNode() {}

// Mode is a function input's parameter-passing mode (spec §3.3).
type Mode int

const (
	ModeNone Mode = iota
	ModeConstant
	ModePrivate
	ModePublic
)

func (m Mode) String() string {
	switch m {
	case ModeConstant:
		return "constant"
	case ModePrivate:
		return "private"
	case ModePublic:
		return "public"
	default:
		return ""
	}
}

// Input is one parameter of a Function.
type Input struct {
	Identity
	Name string
	Type types.Type
	Mode Mode
}

// ConstParam is a generic integer-kind parameter of an inline function
// (spec §3.3).
type ConstParam struct {
	Identity
	Name string
}

// Variant tags the six kinds of Function body (spec §3.3).
type Variant int

const (
	VariantInline Variant = iota
	VariantFunction
	VariantAsyncFunction
	VariantTransition
	VariantAsyncTransition
	VariantScript
)

// Function owns its input list, optional const-parameters, output list,
// body block, variant tag and annotations (spec §3.3).
type Function struct {
	Identity
	Name         string
	Inputs       []*Input
	ConstParams  []*ConstParam
	Outputs      []types.Type
	OutputType   types.Type // the single/tuple output type used by callers
	Body         *Block
	Variant      Variant
	Annotations  []string
}

// StructDecl is a struct or record type declaration (spec §3, §4.2).
type StructDecl struct {
	Identity
	Name     string
	IsRecord bool
	Fields   []FieldDecl
}

// FieldDecl is one member of a StructDecl.
type FieldDecl struct {
	Identity
	Name string
	Type types.Type
}

// MappingDecl is a global persistent key-to-value store (spec §3.2).
type MappingDecl struct {
	Identity
	Name  string
	Key   types.Type
	Value types.Type
}

// StorageDecl is a non-mapping persistent variable (spec §3.4, GLOSSARY).
// Type is the declared element type; the implicit-Optional wrapping that
// a non-Vector, non-record, non-tuple storage variable receives is applied
// by the type checker when it records the variable's type in the symbol
// table (spec §3.4), not by the parser-facing declaration itself.
type StorageDecl struct {
	Identity
	Name string
	Type types.Type
}

// ConstDecl is a top-level or local constant binding.
type ConstDecl struct {
	Identity
	Name  string
	Type  types.Type // nil if inferred from Value
	Value Expression
}

func (*ConstDecl) statementNode() {}

// Constructor is the program's optional constructor (spec §6.2). At most
// one is legal per program; ProgramScope.Constructors is left as a slice
// (rather than collapsed to a single field before the checker ever sees
// it) specifically so the checker can observe more than one candidate and
// reject the duplicate with diagnostics.CodeDuplicateConstructor (spec §9's
// open question) instead of the extras silently vanishing upstream.
type Constructor struct {
	Identity
	Body *Block
}

// ProgramScope is one `program name.network { ... }` scope (spec §1, §6.2):
// an ordered container of consts, structs, mappings, storage variables and
// functions. Ordered maps are represented as plain slices in declaration
// order; there is no name index, so lookup by name (FindFunction,
// FindStruct) is a linear scan. This matches the "ordered maps of items"
// language of spec §6.2 without introducing an actual ordered-map type.
type ProgramScope struct {
	Identity
	Program string // program name, without the network suffix
	Network string // e.g. "aleo"

	Consts    []*ConstDecl
	Structs   []*StructDecl
	Mappings  []*MappingDecl
	Storage   []*StorageDecl
	Functions []*Function

	// Imports names the programs this scope imports (spec §3 "program →
	// modules, imports, program-scopes"). An imported program (one that
	// appears in some other scope's Imports) is not itself allowed to carry
	// further imports (diagnostics.CodeImportedCannotImport).
	Imports []string

	// Constructors holds every constructor declaration the program carries,
	// uncollapsed, so the checker can diagnose more than one of them
	// (diagnostics.CodeDuplicateConstructor) before a single effective
	// constructor is picked. Use ProgramScope.Constructor() for the single
	// effective constructor: the first entry, or nil if none is declared.
	Constructors []*Constructor
}

// Constructor returns the program's first declared constructor, or nil if
// it declares none. Call this only after the checker has run (or is known
// not to be needed) — with more than one Constructors entry the extras are
// reported via CodeDuplicateConstructor rather than silently merged, and
// this accessor simply picks the first so later passes still have exactly
// one constructor to lower/generate.
func (p *ProgramScope) Constructor() *Constructor {
	if len(p.Constructors) == 0 {
		return nil
	}
	return p.Constructors[0]
}

func (p *ProgramScope) FindFunction(name string) *Function {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (p *ProgramScope) FindStruct(name string) *StructDecl {
	for _, s := range p.Structs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Program is the root of the whole compilation unit: a sequence of program
// scopes, in the order they must be compiled (imports before importers,
// spec §4.2 "imports are by construction acyclic").
type Program struct {
	Identity
	Scopes []*ProgramScope
}
