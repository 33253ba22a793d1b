package lang

import (
	"fmt"

	"github.com/weft-ml/weft/internal/ir"
)

// Context is the active compilation context of one in-progress program
// trace. Every builtin takes it explicitly; there is no ambient state.
//
// A Context is not safe for concurrent use. Independent traces must use
// independent contexts over independent builders.
type Context struct {
	builder ir.Builder
}

// NewContext creates a compilation context over the given builder.
func NewContext(builder ir.Builder) *Context {
	return &Context{builder: builder}
}

// Builder returns the IR builder this context emits into.
func (c *Context) Builder() ir.Builder {
	return c.builder
}

// Param introduces a program input of the given type.
func (c *Context) Param(typ ir.Type) Value {
	node := c.builder.NewNode(ir.OpParam, typ)
	return NewValue(node, typ)
}

// ToValue coerces a host value into a Value. Values pass through unchanged;
// Go numeric literals become scalar constants following the DSL's default
// mapping (int -> int32, float -> fp32). Anything else has no representable
// dtype and fails with ErrNotCoercible.
func (c *Context) ToValue(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case int:
		return c.Full(nil, int32(x), ir.Int32), nil
	case int32:
		return c.Full(nil, x, ir.Int32), nil
	case int64:
		return c.Full(nil, x, ir.Int64), nil
	case uint32:
		return c.Full(nil, x, ir.Uint32), nil
	case uint64:
		return c.Full(nil, x, ir.Uint64), nil
	case float32:
		return c.Full(nil, x, ir.Float32), nil
	case float64:
		return c.Full(nil, x, ir.Float32), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrNotCoercible, v)
	}
}

// Full creates a block of the given shape and dtype filled with a host
// constant. A nil shape produces a scalar.
func (c *Context) Full(shape ir.Shape, value any, dt ir.DType) Value {
	typ := ir.BlockType(shape, dt)
	node := c.builder.Splat(typ, value)
	return NewValue(node, typ)
}

// fdiv constructs a division after normalizing both operands to one
// floating dtype. The ieee flag selects round-to-nearest IEEE semantics
// over the fast hardware divide; it is resolved here, at trace time, and
// never becomes an IR operand.
func (c *Context) fdiv(x, y Value, ieee bool) (Value, error) {
	x, y, err := c.LegalizePair(x, y)
	if err != nil {
		return Value{}, err
	}
	if !x.DType().IsFloating() {
		return Value{}, fmt.Errorf("fdiv: expected a floating dtype, got %s", x.DType())
	}
	op := ir.OpDiv
	if ieee {
		op = ir.OpPreciseDiv
	}
	typ := x.Type()
	return NewValue(c.builder.NewNode(op, typ, x.Node(), y.Node()), typ), nil
}
