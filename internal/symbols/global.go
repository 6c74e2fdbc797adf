package symbols

import (
	"fmt"

	"github.com/leo-core/leoc/internal/ast"
)

// Key identifies a top-level declaration by the program that owns it and
// its name (spec §4.2 "a global table keyed by (program, path)").
type Key struct {
	Program string
	Name    string
}

func (k Key) String() string { return fmt.Sprintf("%s/%s", k.Program, k.Name) }

// Global is the cross-program symbol table: every program's functions,
// structs, mappings, storage variables and top-level constants, indexed
// so an external call or Locator expression can be resolved without
// re-walking the whole Program tree.
type Global struct {
	Functions map[Key]*ast.Function
	Structs   map[Key]*ast.StructDecl
	Mappings  map[Key]*ast.MappingDecl
	Storage   map[Key]*ast.StorageDecl
	Consts    map[Key]*ast.ConstDecl

	// Order preserves the compile order of programs as they appeared in
	// the Program (spec §4.2 "imports before importers").
	Order []string
	byName map[string]*ast.ProgramScope
}

func NewGlobal() *Global {
	return &Global{
		Functions: make(map[Key]*ast.Function),
		Structs:   make(map[Key]*ast.StructDecl),
		Mappings:  make(map[Key]*ast.MappingDecl),
		Storage:   make(map[Key]*ast.StorageDecl),
		Consts:    make(map[Key]*ast.ConstDecl),
		byName:    make(map[string]*ast.ProgramScope),
	}
}

// Build populates a Global from a whole Program, in scope order.
func Build(prog *ast.Program) *Global {
	g := NewGlobal()
	for _, scope := range prog.Scopes {
		g.AddProgram(scope)
	}
	return g
}

// AddProgram indexes one program scope's declarations. Callers building a
// Global incrementally (e.g. to test a single program in isolation) can
// call this directly instead of going through Build.
func (g *Global) AddProgram(scope *ast.ProgramScope) {
	g.Order = append(g.Order, scope.Program)
	g.byName[scope.Program] = scope
	for _, fn := range scope.Functions {
		g.Functions[Key{scope.Program, fn.Name}] = fn
	}
	for _, st := range scope.Structs {
		g.Structs[Key{scope.Program, st.Name}] = st
	}
	for _, m := range scope.Mappings {
		g.Mappings[Key{scope.Program, m.Name}] = m
	}
	for _, s := range scope.Storage {
		g.Storage[Key{scope.Program, s.Name}] = s
	}
	for _, c := range scope.Consts {
		g.Consts[Key{scope.Program, c.Name}] = c
	}
}

func (g *Global) Program(name string) (*ast.ProgramScope, bool) {
	p, ok := g.byName[name]
	return p, ok
}

func (g *Global) Function(program, name string) (*ast.Function, bool) {
	f, ok := g.Functions[Key{program, name}]
	return f, ok
}

func (g *Global) Struct(program, name string) (*ast.StructDecl, bool) {
	s, ok := g.Structs[Key{program, name}]
	return s, ok
}

func (g *Global) Mapping(program, name string) (*ast.MappingDecl, bool) {
	m, ok := g.Mappings[Key{program, name}]
	return m, ok
}

func (g *Global) StorageVar(program, name string) (*ast.StorageDecl, bool) {
	s, ok := g.Storage[Key{program, name}]
	return s, ok
}

func (g *Global) Const(program, name string) (*ast.ConstDecl, bool) {
	c, ok := g.Consts[Key{program, name}]
	return c, ok
}
