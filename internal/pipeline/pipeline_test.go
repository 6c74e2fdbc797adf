package pipeline

import (
	"math/big"
	"testing"

	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/manifest"
	"github.com/leo-core/leoc/internal/nodeid"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

var u8Kind = types.IntegerKind{Width: types.W8, Signedness: types.Unsigned}
var u8Type = types.NewInteger(u8Kind)

func intLit(ids *nodeid.Builder, n int64) *ast.LiteralExpr {
	return &ast.LiteralExpr{Identity: ast.Identity{Id: ids.Next()}, Value: value.Int{Kind: u8Kind, Mag: big.NewInt(n)}}
}

// TestCompileCleanProgram is spec §8 seed scenario S1 run end to end
// through the whole pipeline: a clean program produces one chunk with no
// diagnostics.
func TestCompileCleanProgram(t *testing.T) {
	ids := nodeid.NewBuilder()
	id := func() ast.Identity { return ast.Identity{Id: ids.Next()} }

	add := &ast.BinaryExpr{Identity: id(), Op: ast.OpAdd, Left: intLit(ids, 200), Right: intLit(ids, 100)}
	ret := &ast.ReturnStmt{Identity: id(), Value: add}
	body := &ast.Block{Identity: id(), Statements: []ast.Statement{ret}}
	fn := &ast.Function{Identity: id(), Name: "f", Variant: ast.VariantFunction, Outputs: []types.Type{u8Type}, OutputType: u8Type, Body: body}
	scope := &ast.ProgramScope{Identity: id(), Program: "test", Network: "aleo", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Identity: id(), Scopes: []*ast.ProgramScope{scope}}

	result := Compile(ids, prog, nil)

	if result.Sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Sink)
	}
	if len(result.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(result.Chunks))
	}
	chunk := result.Chunks[0].Chunk
	if len(chunk.Instrs) != 2 {
		t.Fatalf("expected 2 instructions, got %d: %v", len(chunk.Instrs), chunk.Instrs)
	}
	if got := chunk.Instrs[1].String(); got != "output r0;" {
		t.Fatalf("instr 1 = %q", got)
	}
}

// TestCompileTypeErrorProducesNoChunks confirms codegen never runs when
// checking reports an error (spec §2).
func TestCompileTypeErrorProducesNoChunks(t *testing.T) {
	ids := nodeid.NewBuilder()
	id := func() ast.Identity { return ast.Identity{Id: ids.Next()} }

	// Returns a field literal from a function declared to return u8.
	badReturn := &ast.LiteralExpr{Identity: id(), Value: value.Field{}}
	ret := &ast.ReturnStmt{Identity: id(), Value: badReturn}
	body := &ast.Block{Identity: id(), Statements: []ast.Statement{ret}}
	fn := &ast.Function{Identity: id(), Name: "f", Variant: ast.VariantFunction, Outputs: []types.Type{u8Type}, OutputType: u8Type, Body: body}
	scope := &ast.ProgramScope{Identity: id(), Program: "test", Network: "aleo", Functions: []*ast.Function{fn}}
	prog := &ast.Program{Identity: id(), Scopes: []*ast.ProgramScope{scope}}

	result := Compile(ids, prog, nil)

	if !result.Sink.HasErrors() {
		t.Fatal("expected a diagnostic for the field-vs-u8 mismatch")
	}
	if len(result.Chunks) != 0 {
		t.Fatalf("expected no chunks after a type error, got %d", len(result.Chunks))
	}
}

// TestCompileManifestStubNameMismatch confirms a manifest dependency whose
// program name doesn't match the actually-imported program is rejected
// (spec §7 "stub-name-mismatch").
func TestCompileManifestStubNameMismatch(t *testing.T) {
	ids := nodeid.NewBuilder()
	id := func() ast.Identity { return ast.Identity{Id: ids.Next()} }

	depScope := &ast.ProgramScope{Identity: id(), Program: "credits", Network: "aleo"}
	mainScope := &ast.ProgramScope{Identity: id(), Program: "token", Network: "aleo", Imports: []string{"credits"}}
	prog := &ast.Program{Identity: id(), Scopes: []*ast.ProgramScope{depScope, mainScope}}

	man := &manifest.Manifest{
		Program: "token", Network: "aleo",
		Dependencies: []manifest.Dependency{{Program: "not_credits", Network: "aleo"}},
	}

	result := Compile(ids, prog, man)

	if !hasCode(result.Sink.Diagnostics(), diagnostics.CodeStubNameMismatch) {
		t.Fatalf("expected stub-name-mismatch, got %v", result.Sink.Diagnostics())
	}
}

// TestCompileManifestMatchingDependency confirms a manifest whose
// dependency names line up with the actually-imported programs produces no
// stub-name-mismatch diagnostics.
func TestCompileManifestMatchingDependency(t *testing.T) {
	ids := nodeid.NewBuilder()
	id := func() ast.Identity { return ast.Identity{Id: ids.Next()} }

	depScope := &ast.ProgramScope{Identity: id(), Program: "credits", Network: "aleo"}
	mainScope := &ast.ProgramScope{Identity: id(), Program: "token", Network: "aleo", Imports: []string{"credits"}}
	prog := &ast.Program{Identity: id(), Scopes: []*ast.ProgramScope{depScope, mainScope}}

	man := &manifest.Manifest{
		Program: "token", Network: "aleo",
		Dependencies: []manifest.Dependency{{Program: "credits", Network: "aleo"}},
	}

	result := Compile(ids, prog, man)

	if hasCode(result.Sink.Diagnostics(), diagnostics.CodeStubNameMismatch) {
		t.Fatalf("unexpected stub-name-mismatch: %v", result.Sink.Diagnostics())
	}
}

func hasCode(diags []diagnostics.Diagnostic, code diagnostics.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}
