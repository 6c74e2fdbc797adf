// Package nodeid hands out the NodeId that every AST node carries.
//
// A single Builder is owned by the compilation driver and passed to the
// CST->AST translator and to every lowering pass that synthesizes new
// nodes, so that NodeId uniqueness holds across the whole compilation
// (spec §3.1, §3.5, §9 "fresh-name generation").
package nodeid

import "fmt"

// Id is an opaque, globally-unique-within-a-compilation node identity.
// The zero value is never issued by a Builder and is reserved as "no id"
// for tests that build partial trees.
type Id uint64

func (id Id) String() string { return fmt.Sprintf("n%d", uint64(id)) }

func (id Id) IsValid() bool { return id != 0 }

// Builder is a monotone counter. It is not safe for concurrent use: the
// whole core is single-threaded (spec §5).
type Builder struct {
	next uint64
}

// NewBuilder returns a Builder whose first issued Id is 1.
func NewBuilder() *Builder {
	return &Builder{next: 1}
}

// Next allocates and returns a fresh Id.
func (b *Builder) Next() Id {
	id := Id(b.next)
	b.next++
	return id
}

// Issued reports how many ids this builder has handed out so far. Useful
// for sizing the NodeId-keyed type table up front.
func (b *Builder) Issued() uint64 { return b.next - 1 }
