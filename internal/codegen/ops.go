package codegen

import "github.com/leo-core/leoc/internal/ast"

func binaryOpName(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "add"
	case ast.OpSub:
		return "sub"
	case ast.OpMul:
		return "mul"
	case ast.OpDiv:
		return "div"
	case ast.OpRem:
		return "rem"
	case ast.OpPow:
		return "pow"
	case ast.OpAnd:
		return "and"
	case ast.OpOr:
		return "or"
	case ast.OpXor:
		return "xor"
	case ast.OpShl:
		return "shl"
	case ast.OpShr:
		return "shr"
	case ast.OpLAnd:
		return "and"
	case ast.OpLOr:
		return "or"
	case ast.OpEq:
		return "is_eq"
	case ast.OpNe:
		return "is_neq"
	case ast.OpLt:
		return "lt"
	case ast.OpLe:
		return "lte"
	case ast.OpGt:
		return "gt"
	case ast.OpGe:
		return "gte"
	default:
		return "op"
	}
}

func unaryOpName(op ast.UnaryOp) string {
	switch op {
	case ast.OpNeg:
		return "neg"
	case ast.OpNot:
		return "not"
	case ast.OpAbs:
		return "abs"
	case ast.OpAbsWrapped:
		return "abs.w"
	case ast.OpNegWrapped:
		return "neg.w"
	case ast.OpSquare:
		return "square"
	case ast.OpSquareRoot:
		return "square_root"
	case ast.OpDoubleGroup:
		return "double"
	case ast.OpInverse:
		return "inv"
	default:
		return "op"
	}
}
