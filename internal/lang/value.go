// Package lang implements the builtin dispatch layer of the Weft DSL: the
// math builtin catalog, dtype admissibility checking, operand coercion, and
// cross-operand type legalization, all running before an operation node is
// emitted into the program IR.
package lang

import (
	"github.com/weft-ml/weft/internal/ir"
)

// Value is the handle a DSL author holds for an intermediate result: an
// operation node paired with its result type. Values are immutable; each
// builtin call produces exactly one new Value.
type Value struct {
	node *ir.Node
	typ  ir.Type
}

// NewValue wraps a node handle and its result type.
func NewValue(node *ir.Node, typ ir.Type) Value {
	return Value{node: node, typ: typ}
}

// Node returns the underlying IR node. The node is owned by the builder's
// program graph.
func (v Value) Node() *ir.Node {
	return v.node
}

// Type returns the value's block type.
func (v Value) Type() ir.Type {
	return v.typ
}

// DType returns the scalar dtype of the value's elements.
func (v Value) DType() ir.DType {
	return v.typ.DType
}

// Shape returns the value's block shape.
func (v Value) Shape() ir.Shape {
	return v.typ.Shape
}
