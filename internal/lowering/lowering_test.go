package lowering

import (
	"math/big"
	"testing"

	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/typetable"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

type builder struct{ b *nodeid.Builder }

func newBuilder() *builder { return &builder{b: nodeid.NewBuilder()} }

func (bd *builder) id() ast.Identity { return ast.Identity{Id: bd.b.Next()} }

// TestS3OptionalStorageRead is spec §8 seed scenario S3: `storage x: field;`
// plus `let y = x;` lowers to a `x__: bool => field` mapping and a
// contains/get_or_use ternary read.
func TestS3OptionalStorageRead(t *testing.T) {
	bd := newBuilder()
	x := &ast.PathExpr{Identity: bd.id(), Name: "x"}
	let := &ast.DefinitionStmt{Identity: bd.id(), Names: []string{"y"}, Types: []types.Type{nil}, Value: x}
	body := &ast.Block{Identity: bd.id(), Statements: []ast.Statement{let}}
	fn := &ast.Function{Identity: bd.id(), Name: "f", Variant: ast.VariantFunction, Body: body}
	storage := &ast.StorageDecl{Identity: bd.id(), Name: "x", Type: types.Field}
	scope := &ast.ProgramScope{Identity: bd.id(), Program: "test", Network: "aleo", Storage: []*ast.StorageDecl{storage}, Functions: []*ast.Function{fn}}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{scope}}

	tt := typetable.New()
	pass := NewPass(bd.b, tt)
	lowered := pass.LowerProgram(prog)

	outScope := lowered.Scopes[0]
	if len(outScope.Storage) != 0 {
		t.Fatalf("expected no storage decls left after lowering, got %d", len(outScope.Storage))
	}
	var mapping *ast.MappingDecl
	for _, m := range outScope.Mappings {
		if m.Name == "x__" {
			mapping = m
		}
	}
	if mapping == nil {
		t.Fatalf("expected mapping x__ to be introduced")
	}
	if mapping.Key != types.Boolean || mapping.Value != types.Field {
		t.Fatalf("expected x__: bool => field, got %s => %s", mapping.Key, mapping.Value)
	}

	outFn := outScope.Functions[0]
	outLet := outFn.Body.Statements[0].(*ast.DefinitionStmt)
	tern, ok := outLet.Value.(*ast.TernaryExpr)
	if !ok {
		t.Fatalf("expected read of x to lower to a ternary, got %T", outLet.Value)
	}
	contains, ok := tern.Cond.(*ast.IntrinsicExpr)
	if !ok || contains.Kind != ast.IntrinsicMappingContains {
		t.Fatalf("expected ternary condition to be x__.contains(false), got %#v", tern.Cond)
	}
	getOrUse, ok := tern.Then.(*ast.IntrinsicExpr)
	if !ok || getOrUse.Kind != ast.IntrinsicMappingGetOrUse {
		t.Fatalf("expected ternary then-branch to be x__.get_or_use(false, 0field), got %#v", tern.Then)
	}
	if _, isNone := tern.Else.(*ast.NoneExpr); !isNone {
		t.Fatalf("expected ternary else-branch to be none, got %#v", tern.Else)
	}
}

// TestS4VectorPushPop is spec §8 seed scenario S4: `storage v: Vector<u64>;`
// plus `v.push(7u64); let a = v.pop();` lowers each call per §4.4.2's table.
func TestS4VectorPushPop(t *testing.T) {
	bd := newBuilder()
	u64 := types.NewInteger(types.IntegerKind{Width: types.W64, Signedness: types.Unsigned})

	vPush := &ast.PathExpr{Identity: bd.id(), Name: "v"}
	seven := &ast.LiteralExpr{Identity: bd.id(), Value: value.Int{Kind: u64.Kind(), Mag: big.NewInt(7)}}
	push := &ast.IntrinsicExpr{Identity: bd.id(), Kind: ast.IntrinsicVectorPush, Receiver: vPush, Args: []ast.Expression{seven}}
	pushStmt := &ast.ExprStmt{Identity: bd.id(), Expr: push}

	vPop := &ast.PathExpr{Identity: bd.id(), Name: "v"}
	pop := &ast.IntrinsicExpr{Identity: bd.id(), Kind: ast.IntrinsicVectorPop, Receiver: vPop}
	popLet := &ast.DefinitionStmt{Identity: bd.id(), Names: []string{"a"}, Types: []types.Type{nil}, Value: pop}

	body := &ast.Block{Identity: bd.id(), Statements: []ast.Statement{pushStmt, popLet}}
	fn := &ast.Function{Identity: bd.id(), Name: "f", Variant: ast.VariantFunction, Body: body}
	storage := &ast.StorageDecl{Identity: bd.id(), Name: "v", Type: types.Vector{Elem: u64}}
	scope := &ast.ProgramScope{Identity: bd.id(), Program: "test", Network: "aleo", Storage: []*ast.StorageDecl{storage}, Functions: []*ast.Function{fn}}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{scope}}

	tt := typetable.New()
	pass := NewPass(bd.b, tt)
	lowered := pass.LowerProgram(prog)

	outScope := lowered.Scopes[0]
	names := map[string]*ast.MappingDecl{}
	for _, m := range outScope.Mappings {
		names[m.Name] = m
	}
	if _, ok := names["v_values__"]; !ok {
		t.Fatalf("expected v_values__ mapping")
	}
	if _, ok := names["v_len__"]; !ok {
		t.Fatalf("expected v_len__ mapping")
	}

	outStmts := outScope.Functions[0].Body.Statements
	// push lowers to 2 aux statements (read len, write len) + 1 write-values statement.
	// pop lowers to 2 aux statements (read len, write len) + the DefinitionStmt itself.
	if len(outStmts) != 6 {
		t.Fatalf("expected 6 statements after lowering push+pop, got %d: %#v", len(outStmts), outStmts)
	}
	if _, ok := outStmts[0].(*ast.DefinitionStmt); !ok {
		t.Fatalf("expected push's length read to come first, got %T", outStmts[0])
	}
	lastStmt, ok := outStmts[len(outStmts)-1].(*ast.DefinitionStmt)
	if !ok {
		t.Fatalf("expected pop's `let a = ...` to be the final statement, got %T", outStmts[len(outStmts)-1])
	}
	if _, ok := lastStmt.Value.(*ast.TernaryExpr); !ok {
		t.Fatalf("expected pop's result to be the bounds ternary, got %T", lastStmt.Value)
	}
}

// TestStorageLoweringIdempotent is spec §8 invariant 6: a program with no
// Optional/Vector storage is returned unchanged by the pass.
func TestStorageLoweringIdempotent(t *testing.T) {
	bd := newBuilder()
	mapping := &ast.MappingDecl{Identity: bd.id(), Name: "m", Key: types.Field, Value: types.Field}
	scope := &ast.ProgramScope{Identity: bd.id(), Program: "test", Network: "aleo", Mappings: []*ast.MappingDecl{mapping}}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{scope}}

	tt := typetable.New()
	pass := NewPass(bd.b, tt)
	lowered := pass.LowerProgram(prog)

	if lowered.Scopes[0] != scope {
		t.Fatalf("expected a scope with no Optional/Vector storage to come back unchanged")
	}
}
