package ir

// OpCode identifies the operation a node performs.
type OpCode int

// Operation codes. One code per math builtin emission, plus the support
// operations (constants, casts) the dispatch layer needs while preparing
// operands.
const (
	OpInvalid OpCode = iota

	// Support operations.
	OpParam // program input
	OpSplat // broadcast a host constant to a block
	OpCast  // dtype conversion

	// Elementwise math.
	OpExp
	OpExp2
	OpLog
	OpLog2
	OpCos
	OpSin
	OpSqrt
	OpPreciseSqrt
	OpRsqrt
	OpErf
	OpFloor
	OpCeil
	OpFAbs
	OpIAbs
	OpAnd
	OpUmulhi
	OpDiv
	OpPreciseDiv
	OpFma
)

var opNames = map[OpCode]string{
	OpParam:       "param",
	OpSplat:       "splat",
	OpCast:        "cast",
	OpExp:         "exp",
	OpExp2:        "exp2",
	OpLog:         "log",
	OpLog2:        "log2",
	OpCos:         "cos",
	OpSin:         "sin",
	OpSqrt:        "sqrt",
	OpPreciseSqrt: "precise_sqrt",
	OpRsqrt:       "rsqrt",
	OpErf:         "erf",
	OpFloor:       "floor",
	OpCeil:        "ceil",
	OpFAbs:        "fabs",
	OpIAbs:        "iabs",
	OpAnd:         "and",
	OpUmulhi:      "umulhi",
	OpDiv:         "div",
	OpPreciseDiv:  "precise_div",
	OpFma:         "fma",
}

// String returns the opcode's name as it appears in IR dumps.
func (op OpCode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "invalid"
}

// Node is one operation in a program graph. Nodes are created by a Builder,
// owned by its program, and never mutated or freed by callers.
type Node struct {
	id       int
	op       OpCode
	typ      Type
	operands []*Node
	value    any // host constant for splat nodes, nil otherwise
}

// ID returns the node's position in the program (0-based, emission order).
func (n *Node) ID() int { return n.id }

// Op returns the node's operation code.
func (n *Node) Op() OpCode { return n.op }

// Type returns the node's result type.
func (n *Node) Type() Type { return n.typ }

// Operands returns the node's input nodes. The returned slice must not be
// modified.
func (n *Node) Operands() []*Node { return n.operands }

// Value returns the host constant of a splat node, or nil.
func (n *Node) Value() any { return n.value }
