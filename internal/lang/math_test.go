package lang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-ml/weft/internal/ir"
)

// countingBuilder records how often the dispatch layer reaches the IR
// builder, so tests can assert that rejected calls emit nothing. Operation
// emissions and constant materializations are counted separately.
type countingBuilder struct {
	*ir.GraphBuilder
	opCalls    int
	splatCalls int
}

func newCountingBuilder() *countingBuilder {
	return &countingBuilder{GraphBuilder: ir.NewBuilder()}
}

func (b *countingBuilder) NewNode(op ir.OpCode, typ ir.Type, operands ...*ir.Node) *ir.Node {
	b.opCalls++
	return b.GraphBuilder.NewNode(op, typ, operands...)
}

func (b *countingBuilder) Splat(typ ir.Type, value any) *ir.Node {
	b.splatCalls++
	return b.GraphBuilder.Splat(typ, value)
}

func (b *countingBuilder) calls() int {
	return b.opCalls + b.splatCalls
}

// param introduces a program input without going through the counted path.
func (b *countingBuilder) param(dt ir.DType, shape ir.Shape) Value {
	typ := ir.BlockType(shape, dt)
	return NewValue(b.GraphBuilder.NewNode(ir.OpParam, typ), typ)
}

func newTestContext() (*Context, *countingBuilder) {
	b := newCountingBuilder()
	return NewContext(b), b
}

func TestAdmissibilityRejectsWithoutEmission(t *testing.T) {
	// For every restricted builtin, an operand outside the set must fail
	// with DtypeMismatchError before the builder is ever invoked.
	tests := []struct {
		name  string
		bad   ir.DType
		arity int
	}{
		{"exp", ir.Int32, 1},
		{"exp2", ir.Int64, 1},
		{"log", ir.Uint32, 1},
		{"log2", ir.Uint64, 1},
		{"cos", ir.Int32, 1},
		{"sin", ir.Int32, 1},
		{"sqrt", ir.Int32, 1},
		{"sqrt_rn", ir.Float64, 1},
		{"rsqrt", ir.Float8E4B15, 1},
		{"erf", ir.Int32, 1},
		{"floor", ir.Int32, 1},
		{"ceil", ir.Int32, 1},
		{"div_rn", ir.Float64, 2},
		{"umulhi", ir.Float32, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, b := newTestContext()
			args := make([]any, tt.arity)
			for i := range args {
				args[i] = b.param(tt.bad, ir.Shape{4})
			}
			before := b.calls()

			_, err := Call(ctx, tt.name, args...)

			var mismatch *DtypeMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.name, mismatch.Builtin)
			assert.Equal(t, tt.bad, mismatch.Got)
			assert.NotEmpty(t, mismatch.Allowed)
			assert.Equal(t, before, b.calls(), "rejected call must not reach the builder")
		})
	}
}

func TestAdmissibilityChecksEveryOperand(t *testing.T) {
	ctx, b := newTestContext()
	x := b.param(ir.Int32, ir.Shape{4})
	y := b.param(ir.Float32, ir.Shape{4})

	// The second operand is the offender; the filter is order-insensitive.
	_, err := Umulhi(ctx, x, y)
	var mismatch *DtypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, ir.Float32, mismatch.Got)
}

func TestUnrestrictedBuiltinsAcceptAnyDtype(t *testing.T) {
	// fdiv and fma declare no admissible set; no dtype is rejected by the
	// filter. abs likewise admits every category.
	for _, dt := range []ir.DType{ir.Int32, ir.Int64, ir.Uint32, ir.Uint64, ir.Float8E4B15, ir.Float32, ir.Float64} {
		ctx, b := newTestContext()
		x := b.param(dt, ir.Shape{4})
		y := b.param(dt, ir.Shape{4})
		z := b.param(dt, ir.Shape{4})

		_, err := Fma(ctx, x, y, z)
		require.NoError(t, err, "fma on %s", dt)

		_, err = Abs(ctx, x)
		require.NoError(t, err, "abs on %s", dt)

		_, err = Fdiv(ctx, x, y, false)
		if dt.IsFloating() {
			require.NoError(t, err, "fdiv on %s", dt)
		} else {
			// Rejected by the division routine, not by the filter.
			require.Error(t, err)
			var mismatch *DtypeMismatchError
			assert.False(t, errors.As(err, &mismatch))
		}
	}
}

func TestAbsUnsignedIsNoOp(t *testing.T) {
	for _, dt := range []ir.DType{ir.Uint32, ir.Uint64} {
		ctx, b := newTestContext()
		x := b.param(dt, ir.Shape{4})
		before := b.calls()

		got, err := Abs(ctx, x)
		require.NoError(t, err)
		assert.Same(t, x.Node(), got.Node(), "abs on %s must return the input handle", dt)
		assert.Equal(t, before, b.calls(), "abs on %s must not emit", dt)
	}
}

func TestAbsFp8ClearsSignBit(t *testing.T) {
	ctx, b := newTestContext()
	x := b.param(ir.Float8E4B15, ir.Shape{8})
	ops, splats := b.opCalls, b.splatCalls

	got, err := Abs(ctx, x)
	require.NoError(t, err)
	require.Equal(t, ops+1, b.opCalls, "expected exactly one and node")
	require.Equal(t, splats+1, b.splatCalls, "expected exactly one mask splat")

	and := got.Node()
	assert.Equal(t, ir.OpAnd, and.Op())
	require.Len(t, and.Operands(), 2)
	assert.Same(t, x.Node(), and.Operands()[0])

	mask := and.Operands()[1]
	assert.Equal(t, ir.OpSplat, mask.Op())
	assert.Equal(t, int8(0x7F), mask.Value())
	assert.Equal(t, ir.Int8, mask.Type().DType)
	assert.True(t, mask.Type().Shape.Equal(ir.Shape{8}))

	assert.Equal(t, ir.Float8E4B15, got.DType())
}

func TestAbsByCategory(t *testing.T) {
	tests := []struct {
		dt ir.DType
		op ir.OpCode
	}{
		{ir.Float32, ir.OpFAbs},
		{ir.Float64, ir.OpFAbs},
		{ir.Int32, ir.OpIAbs},
		{ir.Int64, ir.OpIAbs},
	}
	for _, tt := range tests {
		ctx, b := newTestContext()
		x := b.param(tt.dt, ir.Shape{4})
		before := b.calls()

		got, err := Abs(ctx, x)
		require.NoError(t, err)
		assert.Equal(t, before+1, b.calls())
		assert.Equal(t, tt.op, got.Node().Op())
		assert.Equal(t, tt.dt, got.DType())
	}
}

func TestFmaLegalizationSequence(t *testing.T) {
	// Operands chosen so every pairwise call rewrites exactly one operand:
	// (x,y) promotes int32 to uint32, (z,x') promotes x' to fp64,
	// (z',y') promotes y' to fp64.
	ctx, b := newTestContext()
	x := b.param(ir.Int32, ir.Shape{4})
	y := b.param(ir.Uint32, ir.Shape{4})
	z := b.param(ir.Float64, ir.Shape{4})

	got, err := Fma(ctx, x, y, z)
	require.NoError(t, err)

	nodes := b.Nodes()
	require.Len(t, nodes, 7) // 3 params, 3 casts, 1 fma

	cast1, cast2, cast3, fma := nodes[3], nodes[4], nodes[5], nodes[6]
	assert.Equal(t, ir.OpCast, cast1.Op())
	assert.Same(t, x.Node(), cast1.Operands()[0])
	assert.Equal(t, ir.Uint32, cast1.Type().DType)

	assert.Equal(t, ir.OpCast, cast2.Op())
	assert.Same(t, cast1, cast2.Operands()[0])
	assert.Equal(t, ir.Float64, cast2.Type().DType)

	assert.Equal(t, ir.OpCast, cast3.Op())
	assert.Same(t, y.Node(), cast3.Operands()[0])
	assert.Equal(t, ir.Float64, cast3.Type().DType)

	require.Equal(t, ir.OpFma, fma.Op())
	require.Len(t, fma.Operands(), 3)
	for i, operand := range fma.Operands() {
		assert.Equal(t, ir.Float64, operand.Type().DType, "fma operand %d", i)
	}
	assert.Equal(t, ir.Float64, got.DType())
}

func TestUmulhiIntegerDtypes(t *testing.T) {
	for _, dt := range []ir.DType{ir.Int32, ir.Int64, ir.Uint32, ir.Uint64} {
		ctx, b := newTestContext()
		x := b.param(dt, ir.Shape{4})
		y := b.param(dt, ir.Shape{4})

		got, err := Umulhi(ctx, x, y)
		require.NoError(t, err, "umulhi on %s", dt)
		assert.Equal(t, ir.OpUmulhi, got.Node().Op())
		assert.Equal(t, dt, got.DType())
	}
}

func TestPreciseVariantsNarrowerThanFast(t *testing.T) {
	// sqrt/fdiv accept fp64; their round-to-nearest variants do not.
	ctx, b := newTestContext()
	x := b.param(ir.Float64, ir.Shape{4})
	y := b.param(ir.Float64, ir.Shape{4})

	_, err := Sqrt(ctx, x)
	require.NoError(t, err)
	_, err = Fdiv(ctx, x, y, true)
	require.NoError(t, err)

	var mismatch *DtypeMismatchError
	_, err = SqrtRN(ctx, x)
	require.ErrorAs(t, err, &mismatch)
	_, err = DivRN(ctx, x, y)
	require.ErrorAs(t, err, &mismatch)
}

func TestFdivOpcodeSelection(t *testing.T) {
	ctx, b := newTestContext()
	x := b.param(ir.Float32, ir.Shape{4})
	y := b.param(ir.Float32, ir.Shape{4})

	fast, err := Fdiv(ctx, x, y, false)
	require.NoError(t, err)
	assert.Equal(t, ir.OpDiv, fast.Node().Op())

	precise, err := Fdiv(ctx, x, y, true)
	require.NoError(t, err)
	assert.Equal(t, ir.OpPreciseDiv, precise.Node().Op())

	// The flag is resolved at trace time; it never becomes an operand.
	require.Len(t, precise.Node().Operands(), 2)
}

func TestFdivFlagMustBeBool(t *testing.T) {
	ctx, b := newTestContext()
	x := b.param(ir.Float32, ir.Shape{4})
	y := b.param(ir.Float32, ir.Shape{4})

	_, err := Call(ctx, "fdiv", x, y, "ieee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag operand must be bool")
}

func TestRoundTripCoercedLiteral(t *testing.T) {
	// A host literal is coerced, passes the (exempt) filter, and produces
	// one emitted math node whose result type equals the coerced type.
	ctx, b := newTestContext()
	before := b.calls()

	got, err := Exp(ctx, 2.0)
	require.NoError(t, err)
	assert.Equal(t, before+2, b.calls()) // splat + exp

	exp := got.Node()
	require.Equal(t, ir.OpExp, exp.Op())
	operand := exp.Operands()[0]
	assert.Equal(t, ir.OpSplat, operand.Op())
	assert.True(t, got.Type().Equal(operand.Type()))
	assert.Equal(t, ir.Float32, got.DType())
	assert.True(t, got.Shape().IsScalar())
}

func TestRepeatedCallsEmitIndependentNodes(t *testing.T) {
	ctx, b := newTestContext()
	x := b.param(ir.Float32, ir.Shape{4})

	first, err := Exp(ctx, x)
	require.NoError(t, err)
	second, err := Exp(ctx, x)
	require.NoError(t, err)

	assert.NotSame(t, first.Node(), second.Node())
	assert.NotEqual(t, first.Node().ID(), second.Node().ID())
}

func TestWrongArity(t *testing.T) {
	ctx, b := newTestContext()
	x := b.param(ir.Float32, ir.Shape{4})

	_, err := Call(ctx, "exp", x, x)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1 operands, got 2")
}

func TestUnaryResultTypeMatchesInput(t *testing.T) {
	ops := map[string]ir.OpCode{
		"exp":   ir.OpExp,
		"exp2":  ir.OpExp2,
		"log":   ir.OpLog,
		"log2":  ir.OpLog2,
		"cos":   ir.OpCos,
		"sin":   ir.OpSin,
		"sqrt":  ir.OpSqrt,
		"rsqrt": ir.OpRsqrt,
		"erf":   ir.OpErf,
		"floor": ir.OpFloor,
		"ceil":  ir.OpCeil,
	}
	for name, op := range ops {
		ctx, b := newTestContext()
		x := b.param(ir.Float64, ir.Shape{2, 2})

		got, err := Call(ctx, name, x)
		require.NoError(t, err, name)
		assert.Equal(t, op, got.Node().Op(), name)
		assert.True(t, got.Type().Equal(x.Type()), name)
	}
}
