package typecheck

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/symbols"
	"github.com/leo-core/leoc/internal/types"
)

// checkMemberShape enforces spec §3.4's composite-member invariants: no
// member is a tuple or contains one transitively; no member is a bare
// Future; records are never nested in structs/records (checked via the
// Global struct table when the member type is itself a Composite).
// Optional-typed members are not checked here.
func (c *Checker) checkMemberShape(owner *ast.StructDecl, f ast.FieldDecl) {
	if containsTuple(f.Type) {
		c.Sink.Error(diagnostics.CodeNestedTuple, f.Span(), "member %s of %s contains a tuple type, which is forbidden", f.Name, owner.Name)
	}
	if _, isFuture := f.Type.(types.Future); isFuture {
		c.Sink.Error(diagnostics.CodeTypeShouldBe, f.Span(), "member %s of %s may not be a future", f.Name, owner.Name)
	}
	if comp, ok := f.Type.(types.Composite); ok {
		if nested, found := c.Global.Struct(comp.Program, comp.Name); found && nested.IsRecord {
			c.Sink.Error(diagnostics.CodeTypeShouldBe, f.Span(), "member %s of %s references record %s, which may not be nested", f.Name, owner.Name, nested.Name)
		}
	}
}

// checkStructAcyclic rejects a struct/record whose member types reach back
// to itself, directly or transitively through other structs (spec §4.2
// "structural validation of records, structs"; a composite field is stored
// by value, so a cycle would make the type infinitely sized). Reuses the
// white/gray/black DFS idiom callgraph.go uses for cyclic-function-dependency,
// applied to the Composite-member edges between struct declarations instead
// of call-graph edges between functions.
func (c *Checker) checkStructAcyclic(scope *ast.ProgramScope) {
	const (
		white = iota
		gray
		black
	)

	// A fresh color map per starting struct, mirroring callgraph.go's
	// cyclePath: an early return on finding a cycle leaves ancestor nodes
	// stuck at gray, which would produce false positives for an unrelated
	// struct visited later if the map were shared across starting points.
	var reachesSelf func(start symbols.Key) bool
	reachesSelf = func(start symbols.Key) bool {
		color := make(map[symbols.Key]int)
		var visit func(k symbols.Key) bool
		visit = func(k symbols.Key) bool {
			color[k] = gray
			if decl, ok := c.Global.Struct(k.Program, k.Name); ok {
				for _, f := range decl.Fields {
					comp, isComposite := f.Type.(types.Composite)
					if !isComposite {
						continue
					}
					to := symbols.Key{Program: comp.Program, Name: comp.Name}
					if to == start {
						return true
					}
					if color[to] == white && visit(to) {
						return true
					}
				}
			}
			color[k] = black
			return false
		}
		return visit(start)
	}

	for _, st := range scope.Structs {
		k := symbols.Key{Program: scope.Program, Name: st.Name}
		if reachesSelf(k) {
			c.Sink.Error(diagnostics.CodeCyclicStructDependency, st.Span(), "struct %s has a cyclic member dependency", st.Name)
		}
	}
}

func containsTuple(t types.Type) bool {
	switch tt := t.(type) {
	case types.Tuple:
		return true
	case types.Array:
		return containsTuple(tt.Elem)
	case types.Optional:
		return containsTuple(tt.Inner)
	default:
		return false
	}
}

// checkCompositeInit validates a struct/record initializer against its
// declaration (spec §4.2 "Struct initializer"): the composite type must
// exist in scope, every member must be assigned, and member order at the
// source level does not matter — the canonical order used downstream is
// taken from the definition (spec §4.5 "Member order matches the
// definition").
func (c *Checker) checkCompositeInit(e *ast.CompositeInitExpr, expected types.Type) types.Type {
	decl := c.program.FindStruct(e.TypeName)
	if decl == nil {
		c.Sink.Error(diagnostics.CodeUnknownSymbol, e.Span(), "unknown struct or record type %s", e.TypeName)
		return types.Err
	}

	provided := make(map[string]ast.Expression, len(e.Fields))
	for i, name := range e.Fields {
		if _, dup := provided[name]; dup {
			c.Sink.Error(diagnostics.CodeDuplicateMember, e.Span(), "member %s assigned more than once in initializer for %s", name, e.TypeName)
			continue
		}
		provided[name] = e.Values[i]
	}

	ordered := make([]ast.Expression, len(decl.Fields))
	ok := true
	for i, field := range decl.Fields {
		val, has := provided[field.Name]
		if !has {
			c.Sink.Error(diagnostics.CodeMissingStructMember, e.Span(), "missing member %s of %s", field.Name, decl.Name)
			ok = false
			continue
		}
		c.checkExpr(val, field.Type)
		ordered[i] = val
	}
	if !ok {
		return types.Err
	}

	return types.Composite{Program: c.program.Program, Name: decl.Name}
}
