// Package lowering implements the storage-lowering pass of spec §4.4: the
// last stage before codegen, it rewrites Optional-typed and Vector-typed
// storage into plain mappings plus the expressions/statements that read and
// write them, so that nothing downstream of this package ever sees an
// Optional or Vector storage declaration again (spec §8 invariant 4).
//
// Built on internal/reconstruct's tree-in/tree-out visitor, the way the
// teacher's declarations_functions.go/declarations_instances.go passes
// build their instance-dictionary-threading rewrite on top of the ast
// visitor: a small per-concern ExprVisitor/StmtVisitor pair driving the
// generic walk.
package lowering

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/reconstruct"
	"github.com/leo-core/leoc/internal/source"
	"github.com/leo-core/leoc/internal/types"
)

var u32Kind = types.IntegerKind{Width: types.W32, Signedness: types.Unsigned}
var u32Type = types.NewInteger(u32Kind)

// Pass owns the NodeId builder and type table shared with the rest of the
// compilation, so every node it synthesizes gets a fresh id and a recorded
// type (spec §4.4.3).
type Pass struct {
	Ids   *nodeid.Builder
	Types typeTable
}

// typeTable is the subset of *typetable.Table this package needs; declared
// locally so lowering doesn't need to import typetable just to thread a
// pointer through.
type typeTable interface {
	Set(id nodeid.Id, t types.Type)
}

// NewPass builds a lowering Pass sharing ids and types with the rest of a
// compilation.
func NewPass(ids *nodeid.Builder, types typeTable) *Pass {
	return &Pass{Ids: ids, Types: types}
}

func (p *Pass) fresh(span source.Span) ast.Identity {
	return ast.Identity{Id: p.Ids.Next(), Spn: span}
}

// LowerProgram rewrites every program scope's storage per spec §4.4.1/§4.4.2.
func (p *Pass) LowerProgram(prog *ast.Program) *ast.Program {
	scopes := make([]*ast.ProgramScope, len(prog.Scopes))
	for i, sc := range prog.Scopes {
		scopes[i] = p.lowerScope(sc)
	}
	return &ast.Program{Identity: prog.Identity, Scopes: scopes}
}

func (p *Pass) lowerScope(scope *ast.ProgramScope) *ast.ProgramScope {
	optionalStorage := map[string]types.Type{}
	vectorStorage := map[string]types.Type{}
	mappings := append([]*ast.MappingDecl{}, scope.Mappings...)

	for _, sd := range scope.Storage {
		if vec, ok := sd.Type.(types.Vector); ok {
			vectorStorage[sd.Name] = vec.Elem
			mappings = append(mappings,
				&ast.MappingDecl{Identity: p.fresh(sd.Span()), Name: sd.Name + "_values__", Key: u32Type, Value: vec.Elem},
				&ast.MappingDecl{Identity: p.fresh(sd.Span()), Name: sd.Name + "_len__", Key: types.Boolean, Value: u32Type},
			)
			continue
		}
		optionalStorage[sd.Name] = sd.Type
		mappings = append(mappings, &ast.MappingDecl{Identity: p.fresh(sd.Span()), Name: sd.Name + "__", Key: types.Boolean, Value: sd.Type})
	}

	// Idempotence (spec §8 invariant 6): a scope with no Optional/Vector
	// storage to rewrite is returned unchanged.
	if len(optionalStorage) == 0 && len(vectorStorage) == 0 {
		return scope
	}

	low := newStorageLowerer(p, optionalStorage, vectorStorage)

	functions := make([]*ast.Function, len(scope.Functions))
	for i, fn := range scope.Functions {
		functions[i] = &ast.Function{
			Identity:    fn.Identity,
			Name:        fn.Name,
			Inputs:      fn.Inputs,
			ConstParams: fn.ConstParams,
			Outputs:     fn.Outputs,
			OutputType:  fn.OutputType,
			Body:        low.rec.ReconstructBlock(fn.Body),
			Variant:     fn.Variant,
			Annotations: fn.Annotations,
		}
	}

	var ctors []*ast.Constructor
	if in := scope.Constructor(); in != nil {
		ctors = []*ast.Constructor{{Identity: in.Identity, Body: low.rec.ReconstructBlock(in.Body)}}
	}

	return &ast.ProgramScope{
		Identity:     scope.Identity,
		Program:      scope.Program,
		Network:      scope.Network,
		Imports:      scope.Imports,
		Consts:       scope.Consts,
		Structs:      scope.Structs,
		Mappings:     mappings,
		Storage:      nil,
		Functions:    functions,
		Constructors: ctors,
	}
}

var _ reconstruct.ExprVisitor = (*storageLowerer)(nil)
var _ reconstruct.StmtVisitor = (*storageLowerer)(nil)
