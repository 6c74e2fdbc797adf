package codegen

import "github.com/leo-core/leoc/internal/ast"

// genIntrinsic implements spec §4.5's intrinsic lowering table. By the time
// code generation runs, storage-lowering has already eliminated every
// Vector::* intrinsic (spec §8 invariant 4); encountering one here is an
// internal invariant violation.
func (g *Generator) genIntrinsic(ex *ast.IntrinsicExpr) Reg {
	switch ex.Kind {
	case ast.IntrinsicMappingGet, ast.IntrinsicMappingGetOrUse, ast.IntrinsicMappingContains:
		return g.genMappingRead(ex)
	case ast.IntrinsicMappingSet, ast.IntrinsicMappingRemove:
		return g.genMappingWrite(ex)
	case ast.IntrinsicVectorLen, ast.IntrinsicVectorPush, ast.IntrinsicVectorPop,
		ast.IntrinsicVectorGet, ast.IntrinsicVectorSet, ast.IntrinsicVectorClear, ast.IntrinsicVectorSwapRemove:
		panic("codegen: Vector intrinsic survived storage-lowering")
	case ast.IntrinsicHash, ast.IntrinsicCommit:
		return g.genHashOrCommit(ex)
	case ast.IntrinsicChaChaRand:
		dst := g.newReg()
		g.emit(Instr{Op: "rand.chacha", Dests: []string{dst.String()}, As: typeText(g.typeOf(ex))})
		return dst
	case ast.IntrinsicAwait:
		operand := g.operandText(ex.Receiver)
		g.emit(Instr{Op: "await", Args: []string{operand}})
		return g.newReg()
	default:
		return g.newReg()
	}
}

func (g *Generator) genHashOrCommit(ex *ast.IntrinsicExpr) Reg {
	prefix := "hash"
	if ex.Kind == ast.IntrinsicCommit {
		prefix = "commit"
	}
	args := make([]string, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = g.operandText(a)
	}
	dst := g.newReg()
	g.emit(Instr{Op: prefix + "." + ex.Variant, Args: args, Dests: []string{dst.String()}, As: typeText(g.typeOf(ex))})
	return dst
}

func (g *Generator) genMappingRead(ex *ast.IntrinsicExpr) Reg {
	recv := g.mappingName(ex)
	args := make([]string, 0, len(ex.Args)+1)
	args = append(args, recv)
	for _, a := range ex.Args {
		args = append(args, g.operandText(a))
	}
	dst := g.newReg()
	g.emit(Instr{Op: mappingOpName(ex.Kind), Args: args, Dests: []string{dst.String()}})
	return dst
}

// genMappingWrite implements set/remove: side-effecting, no destination
// register (spec §4.5 "no destination for side-effecting ops like set,
// remove, await").
func (g *Generator) genMappingWrite(ex *ast.IntrinsicExpr) Reg {
	recv := g.mappingName(ex)
	args := make([]string, 0, len(ex.Args)+1)
	args = append(args, recv)
	for _, a := range ex.Args {
		args = append(args, g.operandText(a))
	}
	g.emit(Instr{Op: mappingOpName(ex.Kind), Args: args})
	return g.newReg()
}

func (g *Generator) mappingName(ex *ast.IntrinsicExpr) string {
	if p, ok := ex.Receiver.(*ast.PathExpr); ok {
		return p.Name
	}
	return g.operandText(ex.Receiver)
}

func mappingOpName(kind ast.IntrinsicKind) string {
	switch kind {
	case ast.IntrinsicMappingGet:
		return "get"
	case ast.IntrinsicMappingGetOrUse:
		return "get_or_use"
	case ast.IntrinsicMappingSet:
		return "set"
	case ast.IntrinsicMappingRemove:
		return "remove"
	case ast.IntrinsicMappingContains:
		return "contains"
	default:
		return "mapping_op"
	}
}
