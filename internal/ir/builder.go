package ir

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Builder appends operation nodes to an in-progress program trace.
//
// Implementations are append-only: NewNode and Splat always allocate a fresh
// node and never fail for well-typed input. The dispatch layer consumes this
// interface so tests can substitute a recording stub.
type Builder interface {
	// NewNode appends an operation node with the given result type and
	// operands and returns its handle.
	NewNode(op OpCode, typ Type, operands ...*Node) *Node

	// Splat appends a node broadcasting a host constant to a block of the
	// given type.
	Splat(typ Type, value any) *Node

	// NumNodes returns the number of nodes emitted so far.
	NumNodes() int
}

// GraphBuilder is the concrete Builder backing one program trace. It is not
// safe for concurrent use; independent traces must use independent builders.
type GraphBuilder struct {
	id     uuid.UUID
	nodes  []*Node
	logger *zap.Logger
}

var _ Builder = (*GraphBuilder)(nil)

// Option configures a GraphBuilder.
type Option func(*GraphBuilder)

// WithLogger sets a logger for per-node debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(b *GraphBuilder) {
		b.logger = logger
	}
}

// NewBuilder creates an empty program trace.
func NewBuilder(opts ...Option) *GraphBuilder {
	b := &GraphBuilder{
		id:     uuid.New(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ID returns the unique identifier of this program trace.
func (b *GraphBuilder) ID() uuid.UUID {
	return b.id
}

// NewNode appends an operation node and returns its handle.
func (b *GraphBuilder) NewNode(op OpCode, typ Type, operands ...*Node) *Node {
	return b.append(&Node{
		op:       op,
		typ:      typ,
		operands: operands,
	})
}

// Splat appends a constant-broadcast node and returns its handle.
func (b *GraphBuilder) Splat(typ Type, value any) *Node {
	return b.append(&Node{
		op:    OpSplat,
		typ:   typ,
		value: value,
	})
}

// Param appends a program input node and returns its handle.
func (b *GraphBuilder) Param(typ Type) *Node {
	return b.append(&Node{
		op:  OpParam,
		typ: typ,
	})
}

// NumNodes returns the number of nodes emitted so far.
func (b *GraphBuilder) NumNodes() int {
	return len(b.nodes)
}

// Nodes returns the program's nodes in emission order. The returned slice
// must not be modified.
func (b *GraphBuilder) Nodes() []*Node {
	return b.nodes
}

func (b *GraphBuilder) append(n *Node) *Node {
	n.id = len(b.nodes)
	b.nodes = append(b.nodes, n)
	b.logger.Debug("emit",
		zap.Int("node", n.id),
		zap.Stringer("op", n.op),
		zap.Stringer("type", n.typ),
	)
	return n
}
