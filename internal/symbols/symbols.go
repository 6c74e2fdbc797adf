// Package symbols implements the name-resolution tables of spec §4.2:
// a global table keyed by (program, path) for cross-program references,
// and a local scope stack for function bodies and blocks.
//
// Grounded on the teacher's internal/symbols package: the same
// store map[string]Symbol plus an outer *SymbolTable parent-pointer chain
// (internal/symbols/symbol_table_advanced.go), consolidated here from the
// teacher's eleven-file split down to two files because this domain has no
// trait/alias/instance-dispatch machinery to carry (spec has no type
// classes or generic instances).
package symbols

import (
	"fmt"

	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/types"
)

// Kind tags what a Symbol names.
type Kind int

const (
	KindVariable Kind = iota
	KindConstParam
	KindFunction
	KindStruct
	KindMapping
	KindStorage
	KindConst
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindConstParam:
		return "const parameter"
	case KindFunction:
		return "function"
	case KindStruct:
		return "struct"
	case KindMapping:
		return "mapping"
	case KindStorage:
		return "storage variable"
	case KindConst:
		return "constant"
	default:
		return "symbol"
	}
}

// Symbol is one bound name, local or global.
type Symbol struct {
	Name    string
	Kind    Kind
	Type    types.Type
	Mutable bool
	DeclId  nodeid.Id
}

// Scope is one level of the local lexical scope stack: function bodies
// push a scope for parameters, and each Block pushes a nested scope for
// its own let/const bindings (spec §3.3 "A Block owns ... a scope").
type Scope struct {
	store map[string]Symbol
	outer *Scope
}

// NewScope opens a new scope nested inside outer (outer may be nil for a
// function's top-level parameter scope).
func NewScope(outer *Scope) *Scope {
	return &Scope{store: make(map[string]Symbol), outer: outer}
}

// Define binds sym.Name in this scope only (not ancestors). It reports
// false if the name is already bound in THIS scope — shadowing an outer
// scope's binding is legal, redefining within the same scope is not (spec
// §4.2 "DuplicateMember").
func (s *Scope) Define(sym Symbol) bool {
	if _, exists := s.store[sym.Name]; exists {
		return false
	}
	s.store[sym.Name] = sym
	return true
}

// Resolve looks up name in this scope, then each enclosing scope in turn.
func (s *Scope) Resolve(name string) (Symbol, bool) {
	for sc := s; sc != nil; sc = sc.outer {
		if sym, ok := sc.store[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// ResolveLocal looks up name in this scope only, without consulting
// ancestors; used to detect a local shadowing a parameter in the same
// Define call site.
func (s *Scope) ResolveLocal(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

// String is used in diagnostics that want to name a symbol's kind and
// name together, e.g. fmt.Sprintf("%s %s", sym.Kind, sym.Name).
func (s Symbol) String() string {
	return fmt.Sprintf("%s %s", s.Kind, s.Name)
}
