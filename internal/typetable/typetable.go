// Package typetable is the out-of-band NodeId -> Type side table of spec
// §3.5/§9, grounded on the teacher analyzer's
// `TypeMap map[ast.Node]typesystem.Type` field (internal/analyzer/analyzer.go
// in the teacher): rather than keying by node pointer, this table keys by
// nodeid.Id so it stays valid across AST copies and reconstructions (spec
// §4.3's reconstructor produces new nodes with fresh ids, so the table is
// rebuilt per pass rather than threaded through).
package typetable

import (
	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/types"
)

// Table maps every expression's NodeId to its checked type.
type Table struct {
	entries map[nodeid.Id]types.Type
}

func New() *Table {
	return &Table{entries: make(map[nodeid.Id]types.Type)}
}

// Set records t as the type of id. A later Set for the same id overwrites
// the earlier entry; the checker relies on this to patch Numeric
// placeholders once resolved (spec §4.1 "resolve-if-unsuffixed").
func (tb *Table) Set(id nodeid.Id, t types.Type) {
	tb.entries[id] = t
}

// Get returns the type recorded for id, or (types.Err, false) if none was
// ever recorded.
func (tb *Table) Get(id nodeid.Id) (types.Type, bool) {
	t, ok := tb.entries[id]
	if !ok {
		return types.Err, false
	}
	return t, true
}

// MustGet panics if id has no recorded type; used by passes downstream of
// type checking (lowering, codegen) that require the table to be complete.
func (tb *Table) MustGet(id nodeid.Id) types.Type {
	t, ok := tb.Get(id)
	if !ok {
		panic("typetable: no type recorded for " + id.String())
	}
	return t
}

func (tb *Table) Len() int { return len(tb.entries) }
