// Copyright 2025 Weft Tensor DSL. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package lang is the public surface of the Weft math builtin catalog.
//
// A DSL author opens a compilation context over an IR builder, introduces
// program inputs, and applies builtins; every call validates operand
// dtypes and unifies operand types before a single operation node is
// emitted.
//
// Example:
//
//	b := ir.NewBuilder()
//	ctx := lang.NewContext(b)
//	x := ctx.Param(ir.BlockType(ir.Shape{16}, ir.Float32))
//	y, err := lang.Exp(ctx, x)
package lang

import (
	"github.com/weft-ml/weft/internal/lang"
)

// Context is the active compilation context of one in-progress trace.
type Context = lang.Context

// Value pairs an operation node with its result type.
type Value = lang.Value

// Builtin is one entry of the math catalog.
type Builtin = lang.Builtin

// DtypeMismatchError reports an operand dtype outside a builtin's
// admissible set.
type DtypeMismatchError = lang.DtypeMismatchError

// Errors re-exported from the dispatch core.
var (
	ErrTypeLegalization = lang.ErrTypeLegalization
	ErrNotCoercible     = lang.ErrNotCoercible
)

// NewContext creates a compilation context over the given builder.
var NewContext = lang.NewContext

// NewValue wraps a node handle and its result type.
var NewValue = lang.NewValue

// Lookup returns the catalog entry for a builtin name.
var Lookup = lang.Lookup

// Names returns the sorted names of all registered builtins.
var Names = lang.Names

// Call dispatches a builtin by name with untyped operands.
var Call = lang.Call

// Math builtins.
var (
	Exp    = lang.Exp
	Exp2   = lang.Exp2
	Log    = lang.Log
	Log2   = lang.Log2
	Cos    = lang.Cos
	Sin    = lang.Sin
	Sqrt   = lang.Sqrt
	SqrtRN = lang.SqrtRN
	Rsqrt  = lang.Rsqrt
	Erf    = lang.Erf
	Floor  = lang.Floor
	Ceil   = lang.Ceil
	Abs    = lang.Abs
	Fdiv   = lang.Fdiv
	DivRN  = lang.DivRN
	Umulhi = lang.Umulhi
	Fma    = lang.Fma
)
