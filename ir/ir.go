// Copyright 2025 Weft Tensor DSL. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ir exposes the program intermediate representation Weft traces
// build: scalar dtypes, block types, operation nodes, and the append-only
// builder.
package ir

import (
	"github.com/weft-ml/weft/internal/ir"
)

// DType represents the scalar element type of a block.
type DType = ir.DType

// Scalar dtype constants.
const (
	Int8        DType = ir.Int8
	Int32       DType = ir.Int32
	Int64       DType = ir.Int64
	Uint32      DType = ir.Uint32
	Uint64      DType = ir.Uint64
	Float8E4B15 DType = ir.Float8E4B15
	Float32     DType = ir.Float32
	Float64     DType = ir.Float64
)

// Shape represents the dimensions of a block.
type Shape = ir.Shape

// Type describes a block shape plus the scalar dtype of its elements.
type Type = ir.Type

// OpCode identifies the operation a node performs.
type OpCode = ir.OpCode

// Node is one operation in a program graph.
type Node = ir.Node

// Builder appends operation nodes to an in-progress program trace.
type Builder = ir.Builder

// GraphBuilder is the concrete Builder backing one program trace.
type GraphBuilder = ir.GraphBuilder

// Option configures a GraphBuilder.
type Option = ir.Option

// NewBuilder creates an empty program trace.
//
// Example:
//
//	b := ir.NewBuilder()
//	x := b.Param(ir.BlockType(ir.Shape{16}, ir.Float32))
func NewBuilder(opts ...Option) *GraphBuilder {
	return ir.NewBuilder(opts...)
}

// WithLogger sets a logger for per-node debug output.
var WithLogger = ir.WithLogger

// ScalarType returns the type of a scalar (zero-dimensional block).
func ScalarType(dt DType) Type {
	return ir.ScalarType(dt)
}

// BlockType returns the type of a block with the given shape and dtype.
func BlockType(shape Shape, dt DType) Type {
	return ir.BlockType(shape, dt)
}
