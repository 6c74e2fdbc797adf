package typecheck

import (
	"math/big"
	"testing"

	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/symbols"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

// builder hands out fresh Identity values the way the compilation driver
// would via a nodeid.Builder, so fixtures read close to what a real
// CST->AST translator would produce.
type builder struct{ b *nodeid.Builder }

func newBuilder() *builder { return &builder{b: nodeid.NewBuilder()} }

func (bd *builder) id() ast.Identity { return ast.Identity{Id: bd.b.Next()} }

func hasCode(diags []diagnostics.Diagnostic, code diagnostics.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

// TestS2UnsuffixedLiteralResolution is spec §8 seed scenario S2:
// `fn f(x: field) -> field { return x * 2; }` resolves `2` to Field.
func TestS2UnsuffixedLiteralResolution(t *testing.T) {
	bd := newBuilder()
	litTwo := &ast.LiteralExpr{Identity: bd.id(), Value: value.Unsuffixed{Text: "2"}}
	x := &ast.PathExpr{Identity: bd.id(), Name: "x"}
	mul := &ast.BinaryExpr{Identity: bd.id(), Op: ast.OpMul, Left: x, Right: litTwo}
	ret := &ast.ReturnStmt{Identity: bd.id(), Value: mul}
	body := &ast.Block{Identity: bd.id(), Statements: []ast.Statement{ret}}
	fn := &ast.Function{
		Identity: bd.id(), Name: "f",
		Inputs:   []*ast.Input{{Identity: bd.id(), Name: "x", Type: types.Field}},
		Outputs:  []types.Type{types.Field},
		Body:     body,
		Variant:  ast.VariantFunction,
	}
	scope := &ast.ProgramScope{Identity: bd.id(), Program: "test", Network: "aleo", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{scope}}

	global := symbols.Build(prog)
	c := New(global)
	c.CheckProgram(prog)

	if c.Sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", c.Sink.Diagnostics())
	}
	got, ok := c.Types.Get(litTwo.NodeId())
	if !ok {
		t.Fatalf("no type recorded for literal 2")
	}
	if got != types.Field {
		t.Fatalf("expected literal 2 to resolve to field, got %s", got)
	}
	if _, isUnsuffixed := litTwo.Value.(value.Unsuffixed); isUnsuffixed {
		t.Fatalf("expected literal value to be patched to a concrete Field value")
	}
}

// TestFutureDisciplineWrongOrderRejected is spec §8 seed scenario S5: two
// external async-transition calls followed by a local async call that
// consumes the futures out of order is rejected.
func TestFutureDisciplineWrongOrderRejected(t *testing.T) {
	bd := newBuilder()

	extScope := &ast.ProgramScope{
		Identity: bd.id(), Program: "ext", Network: "aleo",
		Functions: []*ast.Function{
			{Identity: bd.id(), Name: "a", Variant: ast.VariantAsyncTransition, Body: &ast.Block{Identity: bd.id()}},
			{Identity: bd.id(), Name: "b", Variant: ast.VariantAsyncTransition, Body: &ast.Block{Identity: bd.id()}},
		},
	}

	finishInputs := []*ast.Input{
		{Identity: bd.id(), Name: "fa", Type: types.Future{Origin: "ext", Inputs: nil, Inferred: true}},
		{Identity: bd.id(), Name: "fb", Type: types.Future{Origin: "ext", Inputs: nil, Inferred: true}},
	}
	finishBody := &ast.Block{Identity: bd.id()}
	finish := &ast.Function{Identity: bd.id(), Name: "finish", Variant: ast.VariantAsyncFunction, Inputs: finishInputs, Body: finishBody}

	callA := &ast.CallExpr{Identity: bd.id(), Kind: ast.CallExternalTransition, Program: "ext", Name: "a"}
	callB := &ast.CallExpr{Identity: bd.id(), Kind: ast.CallExternalTransition, Program: "ext", Name: "b"}
	defA := &ast.DefinitionStmt{Identity: bd.id(), Names: []string{"fa"}, Types: []types.Type{nil}, Value: callA}
	defB := &ast.DefinitionStmt{Identity: bd.id(), Names: []string{"fb"}, Types: []types.Type{nil}, Value: callB}
	// consume in the WRONG order: finish(fb, fa) when produced order was fa, fb.
	wrongCall := &ast.CallExpr{
		Identity: bd.id(), Kind: ast.CallLocal, Name: "finish",
		Args: []ast.Expression{
			&ast.PathExpr{Identity: bd.id(), Name: "fb"},
			&ast.PathExpr{Identity: bd.id(), Name: "fa"},
		},
	}
	exprStmt := &ast.ExprStmt{Identity: bd.id(), Expr: wrongCall}
	transBody := &ast.Block{Identity: bd.id(), Statements: []ast.Statement{defA, defB, exprStmt}}
	transition := &ast.Function{Identity: bd.id(), Name: "go", Variant: ast.VariantAsyncTransition, Body: transBody}

	mainScope := &ast.ProgramScope{
		Identity: bd.id(), Program: "main", Network: "aleo",
		Functions: []*ast.Function{finish, transition},
	}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{extScope, mainScope}}

	global := symbols.Build(prog)
	c := New(global)
	c.CheckProgram(prog)

	if !hasCode(c.Sink.Diagnostics(), diagnostics.CodeUnknownFutureConsumed) {
		t.Fatalf("expected unknown-future-consumed for out-of-order future consumption, got %v", c.Sink.Diagnostics())
	}
}

// TestDuplicateConstructorRejected is spec §9's open question: a program
// declaring more than one constructor is rejected rather than the parser
// silently collapsing to the last one.
func TestDuplicateConstructorRejected(t *testing.T) {
	bd := newBuilder()
	first := &ast.Constructor{Identity: bd.id(), Body: &ast.Block{Identity: bd.id()}}
	second := &ast.Constructor{Identity: bd.id(), Body: &ast.Block{Identity: bd.id()}}
	scope := &ast.ProgramScope{
		Identity: bd.id(), Program: "test", Network: "aleo",
		Constructors: []*ast.Constructor{first, second},
	}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{scope}}

	global := symbols.Build(prog)
	c := New(global)
	c.CheckProgram(prog)

	if !hasCode(c.Sink.Diagnostics(), diagnostics.CodeDuplicateConstructor) {
		t.Fatalf("expected duplicate-constructor for two constructors, got %v", c.Sink.Diagnostics())
	}
}

// TestCyclicStructDependencyRejected is spec §7's "cyclic-struct-dependency":
// a struct whose member type reaches back to itself through another struct
// is rejected.
func TestCyclicStructDependencyRejected(t *testing.T) {
	bd := newBuilder()
	a := &ast.StructDecl{Identity: bd.id(), Name: "A", Fields: []ast.FieldDecl{
		{Identity: bd.id(), Name: "b", Type: types.Composite{Program: "test", Name: "B"}},
	}}
	b := &ast.StructDecl{Identity: bd.id(), Name: "B", Fields: []ast.FieldDecl{
		{Identity: bd.id(), Name: "a", Type: types.Composite{Program: "test", Name: "A"}},
	}}
	scope := &ast.ProgramScope{Identity: bd.id(), Program: "test", Network: "aleo", Structs: []*ast.StructDecl{a, b}}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{scope}}

	global := symbols.Build(prog)
	c := New(global)
	c.CheckProgram(prog)

	if !hasCode(c.Sink.Diagnostics(), diagnostics.CodeCyclicStructDependency) {
		t.Fatalf("expected cyclic-struct-dependency, got %v", c.Sink.Diagnostics())
	}
}

// TestDuplicateMemberRejected is spec §7's "duplicate-member": assigning the
// same field twice in a composite initializer is rejected rather than
// silently keeping the last value.
func TestDuplicateMemberRejected(t *testing.T) {
	bd := newBuilder()
	decl := &ast.StructDecl{Identity: bd.id(), Name: "Point", Fields: []ast.FieldDecl{
		{Identity: bd.id(), Name: "x", Type: types.NewInteger(types.IntegerKind{Width: types.W8, Signedness: types.Unsigned})},
		{Identity: bd.id(), Name: "y", Type: types.NewInteger(types.IntegerKind{Width: types.W8, Signedness: types.Unsigned})},
	}}
	init := &ast.CompositeInitExpr{
		Identity: bd.id(), TypeName: "Point",
		Fields: []string{"x", "x", "y"},
		Values: []ast.Expression{
			&ast.LiteralExpr{Identity: bd.id(), Value: value.Int{Kind: types.IntegerKind{Width: types.W8, Signedness: types.Unsigned}, Mag: big.NewInt(1)}},
			&ast.LiteralExpr{Identity: bd.id(), Value: value.Int{Kind: types.IntegerKind{Width: types.W8, Signedness: types.Unsigned}, Mag: big.NewInt(2)}},
			&ast.LiteralExpr{Identity: bd.id(), Value: value.Int{Kind: types.IntegerKind{Width: types.W8, Signedness: types.Unsigned}, Mag: big.NewInt(3)}},
		},
	}
	ret := &ast.ReturnStmt{Identity: bd.id(), Value: init}
	body := &ast.Block{Identity: bd.id(), Statements: []ast.Statement{ret}}
	fn := &ast.Function{Identity: bd.id(), Name: "f", Variant: ast.VariantFunction, Outputs: []types.Type{types.Composite{Program: "test", Name: "Point"}}, Body: body}
	scope := &ast.ProgramScope{Identity: bd.id(), Program: "test", Network: "aleo", Structs: []*ast.StructDecl{decl}, Functions: []*ast.Function{fn}}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{scope}}

	global := symbols.Build(prog)
	c := New(global)
	c.CheckProgram(prog)

	if !hasCode(c.Sink.Diagnostics(), diagnostics.CodeDuplicateMember) {
		t.Fatalf("expected duplicate-member, got %v", c.Sink.Diagnostics())
	}
}

// TestArrayTooLargeRejected is spec §7's "array-too-large", the sibling
// check to array-empty's lower bound.
func TestArrayTooLargeRejected(t *testing.T) {
	bd := newBuilder()
	u8 := types.NewInteger(types.IntegerKind{Width: types.W8, Signedness: types.Unsigned})
	elems := make([]ast.Expression, 64)
	for i := range elems {
		elems[i] = &ast.LiteralExpr{Identity: bd.id(), Value: value.Int{Kind: types.IntegerKind{Width: types.W8, Signedness: types.Unsigned}, Mag: big.NewInt(int64(i))}}
	}
	arr := &ast.ArrayCtorExpr{Identity: bd.id(), Elements: elems}
	ret := &ast.ReturnStmt{Identity: bd.id(), Value: arr}
	body := &ast.Block{Identity: bd.id(), Statements: []ast.Statement{ret}}
	fn := &ast.Function{Identity: bd.id(), Name: "f", Variant: ast.VariantFunction, Outputs: []types.Type{types.Array{Elem: u8, Length: types.ConstLength{Value: 64}}}, Body: body}
	scope := &ast.ProgramScope{Identity: bd.id(), Program: "test", Network: "aleo", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{scope}}

	global := symbols.Build(prog)
	c := New(global)
	c.CheckProgram(prog)

	if !hasCode(c.Sink.Diagnostics(), diagnostics.CodeArrayTooLarge) {
		t.Fatalf("expected array-too-large, got %v", c.Sink.Diagnostics())
	}
}

// TestHexLiteralOnFieldRejected is spec §7's "hexbin-literal-on-non-integer":
// a hex-radix unsuffixed literal resolved against a non-integer expected
// type (field, here) is rejected.
func TestHexLiteralOnFieldRejected(t *testing.T) {
	bd := newBuilder()
	lit := &ast.LiteralExpr{Identity: bd.id(), Value: value.Unsuffixed{Text: "0xFF"}}
	ret := &ast.ReturnStmt{Identity: bd.id(), Value: lit}
	body := &ast.Block{Identity: bd.id(), Statements: []ast.Statement{ret}}
	fn := &ast.Function{Identity: bd.id(), Name: "f", Variant: ast.VariantFunction, Outputs: []types.Type{types.Field}, Body: body}
	scope := &ast.ProgramScope{Identity: bd.id(), Program: "test", Network: "aleo", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{scope}}

	global := symbols.Build(prog)
	c := New(global)
	c.CheckProgram(prog)

	if !hasCode(c.Sink.Diagnostics(), diagnostics.CodeHexBinLiteralOnNonInteger) {
		t.Fatalf("expected hexbin-literal-on-non-integer, got %v", c.Sink.Diagnostics())
	}
}

// TestImportedProgramCannotImportRejected is spec §7's
// "imported-program-cannot-import": a program imported by another scope may
// not itself declare imports.
func TestImportedProgramCannotImportRejected(t *testing.T) {
	bd := newBuilder()
	leaf := &ast.ProgramScope{
		Identity: bd.id(), Program: "leaf", Network: "aleo",
		Imports: []string{"deeper"},
	}
	deeper := &ast.ProgramScope{Identity: bd.id(), Program: "deeper", Network: "aleo"}
	main := &ast.ProgramScope{
		Identity: bd.id(), Program: "main", Network: "aleo",
		Imports: []string{"leaf"},
	}
	prog := &ast.Program{Identity: bd.id(), Scopes: []*ast.ProgramScope{deeper, leaf, main}}

	global := symbols.Build(prog)
	c := New(global)
	c.CheckProgram(prog)

	if !hasCode(c.Sink.Diagnostics(), diagnostics.CodeImportedCannotImport) {
		t.Fatalf("expected imported-program-cannot-import, got %v", c.Sink.Diagnostics())
	}
}
