package codegen

import (
	"math/big"
	"testing"

	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/symbols"
	"github.com/leo-core/leoc/internal/typetable"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

type builder struct{ b *nodeid.Builder }

func newBuilder() *builder { return &builder{b: nodeid.NewBuilder()} }

func (bd *builder) id() ast.Identity { return ast.Identity{Id: bd.b.Next()} }

var u8Kind = types.IntegerKind{Width: types.W8, Signedness: types.Unsigned}
var u8Type = types.NewInteger(u8Kind)

func intLit(bd *builder, n int64) *ast.LiteralExpr {
	return &ast.LiteralExpr{Identity: bd.id(), Value: value.Int{Kind: u8Kind, Mag: big.NewInt(n)}}
}

// TestS1AddLiterals is spec §8 seed scenario S1: `return 200u8 + 100u8;`
// compiles to "add 200u8 100u8 into r0;" followed by "output r0;", with no
// preceding const-load instructions since both operands are literals used
// directly as operand text.
func TestS1AddLiterals(t *testing.T) {
	bd := newBuilder()
	add := &ast.BinaryExpr{Identity: bd.id(), Op: ast.OpAdd, Left: intLit(bd, 200), Right: intLit(bd, 100)}
	ret := &ast.ReturnStmt{Identity: bd.id(), Value: add}
	body := &ast.Block{Identity: bd.id(), Statements: []ast.Statement{ret}}
	fn := &ast.Function{Identity: bd.id(), Name: "f", Variant: ast.VariantFunction, OutputType: u8Type, Body: body}

	g := New(typetable.New(), symbols.NewGlobal())
	chunk := g.GenerateFunction("test", fn)

	if len(chunk.Instrs) != 2 {
		t.Fatalf("expected 2 instructions, got %d: %v", len(chunk.Instrs), chunk.Instrs)
	}
	if got := chunk.Instrs[0].String(); got != "add 200u8 100u8 into r0;" {
		t.Fatalf("instr 0 = %q", got)
	}
	if got := chunk.Instrs[1].String(); got != "output r0;" {
		t.Fatalf("instr 1 = %q", got)
	}
}

// TestS6ArrayLiteral is spec §8 seed scenario S6: `let a: [u8; 3] = [1u8,
// 2u8, 3u8];` evaluates the three literals into registers r0, r1, r2, then
// casts them into r3 as the array type.
func TestS6ArrayLiteral(t *testing.T) {
	bd := newBuilder()
	arrT := types.Array{Elem: u8Type, Length: types.ConstLength{Value: 3}}
	ctor := &ast.ArrayCtorExpr{Identity: bd.id(), Elements: []ast.Expression{intLit(bd, 1), intLit(bd, 2), intLit(bd, 3)}}
	let := &ast.DefinitionStmt{Identity: bd.id(), Names: []string{"a"}, Types: []types.Type{arrT}, Value: ctor}
	body := &ast.Block{Identity: bd.id(), Statements: []ast.Statement{let}}
	fn := &ast.Function{Identity: bd.id(), Name: "f", Variant: ast.VariantFunction, Body: body}

	tt := typetable.New()
	tt.Set(ctor.NodeId(), arrT)

	g := New(tt, symbols.NewGlobal())
	chunk := g.GenerateFunction("test", fn)

	if len(chunk.Instrs) != 4 {
		t.Fatalf("expected 4 instructions, got %d: %v", len(chunk.Instrs), chunk.Instrs)
	}
	for i, want := range []string{"const 1u8 into r0;", "const 2u8 into r1;", "const 3u8 into r2;"} {
		if got := chunk.Instrs[i].String(); got != want {
			t.Fatalf("instr %d = %q, want %q", i, got, want)
		}
	}
	if got := chunk.Instrs[3].String(); got != "cast r0 r1 r2 into r3 as [u8; 3u32];" {
		t.Fatalf("instr 3 = %q", got)
	}
}
