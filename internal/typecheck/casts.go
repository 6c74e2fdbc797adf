package typecheck

import (
	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/types"
	"github.com/leo-core/leoc/internal/value"
)

// checkCast implements spec §4.2 "Cast: allowed between {integer, bool,
// field, group, scalar, address} in any direction; forbidden on other
// types".
func (c *Checker) checkCast(e *ast.CastExpr) types.Type {
	srcT := c.checkExpr(e.Operand, nil)
	if types.IsErr(srcT) {
		return types.Err
	}
	if !types.CanCast(srcT, e.Target) {
		c.Sink.Error(diagnostics.CodeTypeShouldBe, e.Span(), "cannot cast %s to %s", srcT, e.Target)
		return types.Err
	}
	return e.Target
}

// checkBinary implements spec §4.2's per-operator type tables.
func (c *Checker) checkBinary(e *ast.BinaryExpr) types.Type {
	switch e.Op {
	case ast.OpLAnd, ast.OpLOr:
		c.checkExpr(e.Left, types.Boolean)
		c.checkExpr(e.Right, types.Boolean)
		return types.Boolean
	case ast.OpEq, ast.OpNe:
		leftT := c.checkExpr(e.Left, nil)
		c.checkExpr(e.Right, leftT)
		return types.Boolean
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		leftT := c.checkExpr(e.Left, nil)
		c.checkExpr(e.Right, leftT)
		if !comparable(leftT) && !types.IsErr(leftT) {
			c.Sink.Error(diagnostics.CodeOperationTypesMismatch, e.Span(), "type %s does not support ordered comparison", leftT)
		}
		return types.Boolean
	case ast.OpPow:
		return c.checkPow(e)
	case ast.OpShl, ast.OpShr:
		return c.checkShift(e)
	case ast.OpMul:
		return c.checkMul(e)
	default:
		leftT := c.checkExpr(e.Left, nil)
		rightT := c.checkExpr(e.Right, leftT)
		if !sameArithmeticKind(leftT, rightT) && !types.IsErr(leftT) && !types.IsErr(rightT) {
			c.Sink.Error(diagnostics.CodeOperationTypesMismatch, e.Span(), "operator requires matching operand types, found %s and %s", leftT, rightT)
			return types.Err
		}
		return leftT
	}
}

func isUnsuffixedLiteral(e ast.Expression) bool {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok {
		return false
	}
	_, unsuffixed := lit.Value.(value.Unsuffixed)
	return unsuffixed
}

// mulPartnerExpected picks the expected type an unsuffixed literal
// multiplied against t should resolve to: group's partner is a scalar,
// everything else (field, scalar, integer) expects its own type.
func mulPartnerExpected(t types.Type) types.Type {
	if t == types.Group {
		return types.Scalar
	}
	return t
}

func comparable(t types.Type) bool {
	return types.IsInteger(t) || t == types.Field || t == types.Scalar
}

func sameArithmeticKind(a, b types.Type) bool {
	if types.IsInteger(a) && types.IsInteger(b) {
		return types.Equal(a, b)
	}
	switch a {
	case types.Field, types.Group, types.Scalar:
		return a == b
	}
	return false
}

// checkMul handles the multiplication exceptions of spec §4.1: integer*
// integer of the same width, field*field, group*scalar, scalar*group. An
// unsuffixed literal operand is resolved against the other operand's type
// (spec §4.1 "the resolution is driven by the other operand's type");
// whichever side is not an unsuffixed literal is checked first.
func (c *Checker) checkMul(e *ast.BinaryExpr) types.Type {
	var leftT, rightT types.Type
	if isUnsuffixedLiteral(e.Left) && !isUnsuffixedLiteral(e.Right) {
		rightT = c.checkExpr(e.Right, nil)
		leftT = c.checkExpr(e.Left, mulPartnerExpected(rightT))
	} else {
		leftT = c.checkExpr(e.Left, nil)
		rightT = c.checkExpr(e.Right, mulPartnerExpected(leftT))
	}
	switch {
	case leftT == types.Group && rightT == types.Scalar:
		return types.Group
	case leftT == types.Scalar && rightT == types.Group:
		return types.Group
	case leftT == types.Field && rightT == types.Field:
		return types.Field
	case types.IsInteger(leftT) && types.IsInteger(rightT) && types.Equal(leftT, rightT):
		return leftT
	case types.IsErr(leftT) || types.IsErr(rightT):
		return types.Err
	default:
		c.Sink.Error(diagnostics.CodeOperationTypesMismatch, e.Span(), "unsupported multiplication between %s and %s", leftT, rightT)
		return types.Err
	}
}

// checkPow implements spec §4.1's `a ** b`: field^field, or
// integer^u{8|16|32}.
func (c *Checker) checkPow(e *ast.BinaryExpr) types.Type {
	baseT := c.checkExpr(e.Left, nil)
	if baseT == types.Field {
		c.checkExpr(e.Right, types.Field)
		return types.Field
	}
	if types.IsInteger(baseT) {
		expT := c.checkExpr(e.Right, nil)
		if !isShiftOrPowExponent(expT) {
			c.Sink.Error(diagnostics.CodePowTypeMismatch, e.Span(), "exponent must be u8, u16 or u32, found %s", expT)
			return types.Err
		}
		return baseT
	}
	if !types.IsErr(baseT) {
		c.Sink.Error(diagnostics.CodePowTypeMismatch, e.Span(), "unsupported base type %s for **", baseT)
	}
	return types.Err
}

// checkShift implements spec §4.1's shl/shr amount-type rule.
func (c *Checker) checkShift(e *ast.BinaryExpr) types.Type {
	valT := c.checkExpr(e.Left, nil)
	amtT := c.checkExpr(e.Right, nil)
	if !isShiftOrPowExponent(amtT) {
		c.Sink.Error(diagnostics.CodeShiftMagnitude, e.Span(), "shift amount must be u8, u16 or u32, found %s", amtT)
		return types.Err
	}
	if !types.IsInteger(valT) && !types.IsErr(valT) {
		c.Sink.Error(diagnostics.CodeOperationTypesMismatch, e.Span(), "shift requires an integer operand, found %s", valT)
		return types.Err
	}
	return valT
}

func isShiftOrPowExponent(t types.Type) bool {
	it, ok := t.(types.Integer)
	if !ok {
		return false
	}
	return it.Signedness == types.Unsigned && (it.Width == types.W8 || it.Width == types.W16 || it.Width == types.W32)
}

// checkUnary checks the unary operators, including the bitwise/logical
// `not` shared between Bool and Integer (spec §4.1 "Bitwise ops are
// defined on booleans and on integer types").
func (c *Checker) checkUnary(e *ast.UnaryExpr) types.Type {
	operandT := c.checkExpr(e.Operand, nil)
	switch e.Op {
	case ast.OpNot:
		if operandT != types.Boolean && !types.IsInteger(operandT) && !types.IsErr(operandT) {
			c.Sink.Error(diagnostics.CodeOperationTypesMismatch, e.Span(), "not requires bool or integer, found %s", operandT)
			return types.Err
		}
		return operandT
	case ast.OpNeg, ast.OpAbs, ast.OpAbsWrapped, ast.OpNegWrapped:
		if !types.IsInteger(operandT) && operandT != types.Field && operandT != types.Group && !types.IsErr(operandT) {
			c.Sink.Error(diagnostics.CodeOperationTypesMismatch, e.Span(), "unsupported operand type %s", operandT)
			return types.Err
		}
		return operandT
	case ast.OpSquare, ast.OpSquareRoot, ast.OpInverse:
		if operandT != types.Field && !types.IsErr(operandT) {
			c.Sink.Error(diagnostics.CodeOperationTypesMismatch, e.Span(), "%s requires field, found %s", unaryOpName(e.Op), operandT)
			return types.Err
		}
		return types.Field
	case ast.OpDoubleGroup:
		if operandT != types.Group && !types.IsErr(operandT) {
			c.Sink.Error(diagnostics.CodeOperationTypesMismatch, e.Span(), "double requires group, found %s", operandT)
			return types.Err
		}
		return types.Group
	default:
		return operandT
	}
}

func unaryOpName(op ast.UnaryOp) string {
	switch op {
	case ast.OpSquare:
		return "square"
	case ast.OpSquareRoot:
		return "square_root"
	case ast.OpInverse:
		return "inverse"
	default:
		return "operator"
	}
}
