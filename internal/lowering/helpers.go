package lowering

import (
	"math/big"

	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/reconstruct"
	"github.com/leo-core/leoc/internal/source"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

// storageLowerer rewrites reads/writes of Optional storage and Vector
// intrinsic calls on Vector storage (spec §4.4.1, §4.4.2). It is plugged
// into a reconstruct.Reconstructor as both the ExprVisitor and StmtVisitor.
type storageLowerer struct {
	p        *Pass
	rec      *reconstruct.Reconstructor
	optional map[string]types.Type // storage name -> inner type
	vector   map[string]types.Type // storage name -> element type
	names    freshNames
}

func newStorageLowerer(p *Pass, optional, vector map[string]types.Type) *storageLowerer {
	low := &storageLowerer{p: p, optional: optional, vector: vector}
	low.rec = &reconstruct.Reconstructor{Expr: low, Stmt: low}
	return low
}

func (low *storageLowerer) boolLit(span source.Span, v bool) *ast.LiteralExpr {
	id := low.p.fresh(span)
	low.p.Types.Set(id.Id, types.Boolean)
	return &ast.LiteralExpr{Identity: id, Value: value.Bool(v)}
}

func (low *storageLowerer) u32Lit(span source.Span, n int64) *ast.LiteralExpr {
	id := low.p.fresh(span)
	low.p.Types.Set(id.Id, u32Type)
	return &ast.LiteralExpr{Identity: id, Value: value.Int{Kind: u32Kind, Mag: big.NewInt(n)}}
}

func (low *storageLowerer) zeroLit(span source.Span, t types.Type) *ast.LiteralExpr {
	id := low.p.fresh(span)
	low.p.Types.Set(id.Id, t)
	return &ast.LiteralExpr{Identity: id, Value: zeroValue(t)}
}

func (low *storageLowerer) noneLit(span source.Span, inner types.Type) *ast.NoneExpr {
	id := low.p.fresh(span)
	low.p.Types.Set(id.Id, types.Optional{Inner: inner})
	return &ast.NoneExpr{Identity: id}
}

func (low *storageLowerer) pathExpr(span source.Span, name string, t types.Type) *ast.PathExpr {
	id := low.p.fresh(span)
	low.p.Types.Set(id.Id, t)
	return &ast.PathExpr{Identity: id, Name: name}
}

func (low *storageLowerer) binExpr(span source.Span, op ast.BinaryOp, l, r ast.Expression, result types.Type) *ast.BinaryExpr {
	id := low.p.fresh(span)
	low.p.Types.Set(id.Id, result)
	return &ast.BinaryExpr{Identity: id, Op: op, Left: l, Right: r}
}

func (low *storageLowerer) ternary(span source.Span, cond, then, els ast.Expression, result types.Type) *ast.TernaryExpr {
	id := low.p.fresh(span)
	low.p.Types.Set(id.Id, result)
	return &ast.TernaryExpr{Identity: id, Cond: cond, Then: then, Else: els}
}

// mappingCall builds `<mapName>.<kind>(args...)` typed as resultT, with the
// receiver path itself typed mapping<keyT, valT> (spec §4.4.3 "every
// introduced expression ... has a type-table entry").
func (low *storageLowerer) mappingCall(span source.Span, kind ast.IntrinsicKind, mapName string, keyT, valT types.Type, args []ast.Expression, resultT types.Type) *ast.IntrinsicExpr {
	recvId := low.p.fresh(span)
	low.p.Types.Set(recvId.Id, types.Mapping{Key: keyT, Value: valT})
	recv := &ast.PathExpr{Identity: recvId, Name: mapName}

	id := low.p.fresh(span)
	low.p.Types.Set(id.Id, resultT)
	return &ast.IntrinsicExpr{Identity: id, Kind: kind, Receiver: recv, Args: args}
}

func (low *storageLowerer) defStmt(span source.Span, name string, val ast.Expression, t types.Type) *ast.DefinitionStmt {
	return &ast.DefinitionStmt{Identity: low.p.fresh(span), Names: []string{name}, Types: []types.Type{t}, Value: val}
}

func (low *storageLowerer) exprStmt(span source.Span, e ast.Expression) *ast.ExprStmt {
	return &ast.ExprStmt{Identity: low.p.fresh(span), Expr: e}
}

func (low *storageLowerer) assertStmt(span source.Span, cond ast.Expression) *ast.AssertStmt {
	return &ast.AssertStmt{Identity: low.p.fresh(span), Kind: ast.AssertTrue, Left: cond}
}
