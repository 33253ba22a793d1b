package lang

import (
	"fmt"

	"github.com/weft-ml/weft/internal/ir"
)

// LegalizePair unifies the dtypes and shapes of two operands so they can
// feed one operation node. At most one operand is rewritten per concern:
// the operand whose dtype differs from the promoted dtype gets a cast node,
// and a scalar operand paired with a block gets a broadcast node.
//
// Incompatible pairs fail with an error wrapping ErrTypeLegalization; no
// math node has been emitted at that point.
func (c *Context) LegalizePair(x, y Value) (Value, Value, error) {
	target, ok := promote(x.DType(), y.DType())
	if !ok {
		return Value{}, Value{}, fmt.Errorf("%w for %s and %s",
			ErrTypeLegalization, x.DType(), y.DType())
	}
	x = c.cast(x, target)
	y = c.cast(y, target)

	switch {
	case x.Shape().Equal(y.Shape()):
		// already unified
	case x.Shape().IsScalar():
		x = c.broadcast(x, y.Shape())
	case y.Shape().IsScalar():
		y = c.broadcast(y, x.Shape())
	default:
		return Value{}, Value{}, fmt.Errorf("%w: incompatible shapes %s and %s",
			ErrTypeLegalization, x.Shape(), y.Shape())
	}
	return x, y, nil
}

// cast rewrites v to the target dtype, emitting a cast node only when the
// dtype actually changes.
func (c *Context) cast(v Value, dt ir.DType) Value {
	if v.DType() == dt {
		return v
	}
	typ := v.Type().WithDType(dt)
	return NewValue(c.builder.NewNode(ir.OpCast, typ, v.Node()), typ)
}

// broadcast splats a scalar value to the given block shape.
func (c *Context) broadcast(v Value, shape ir.Shape) Value {
	typ := ir.BlockType(shape, v.DType())
	return NewValue(c.builder.NewNode(ir.OpSplat, typ, v.Node()), typ)
}

// promote returns the common dtype two operands unify to, or false when no
// promotion rule exists.
//
// Rules: equal dtypes pass through; between floats the wider encoding wins;
// a float absorbs any integer, except fp8e4b15 which is too narrow to
// represent one; between integers the wider wins, and at equal width
// unsigned wins.
func promote(a, b ir.DType) (ir.DType, bool) {
	if a == b {
		return a, true
	}
	switch {
	case a.IsFloating() && b.IsFloating():
		if a.Size() >= b.Size() {
			return a, true
		}
		return b, true
	case a.IsFloating():
		if a.IsFloat8E4B15() {
			return ir.Invalid, false
		}
		return a, true
	case b.IsFloating():
		if b.IsFloat8E4B15() {
			return ir.Invalid, false
		}
		return b, true
	default:
		// both integers
		if a.Size() > b.Size() {
			return a, true
		}
		if b.Size() > a.Size() {
			return b, true
		}
		if a.IsUnsignedInt() {
			return a, true
		}
		return b, true
	}
}
