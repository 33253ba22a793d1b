package lang

// Typed entry points for the math catalog. Operands may be Values or host
// numerics; host numerics are coerced to scalar constants before dispatch.

// Exp computes the elementwise exponential of x.
func Exp(ctx *Context, x any) (Value, error) {
	return Call(ctx, "exp", x)
}

// Exp2 computes the elementwise base-2 exponential of x.
func Exp2(ctx *Context, x any) (Value, error) {
	return Call(ctx, "exp2", x)
}

// Log computes the elementwise natural logarithm of x.
func Log(ctx *Context, x any) (Value, error) {
	return Call(ctx, "log", x)
}

// Log2 computes the elementwise base-2 logarithm of x.
func Log2(ctx *Context, x any) (Value, error) {
	return Call(ctx, "log2", x)
}

// Cos computes the elementwise cosine of x.
func Cos(ctx *Context, x any) (Value, error) {
	return Call(ctx, "cos", x)
}

// Sin computes the elementwise sine of x.
func Sin(ctx *Context, x any) (Value, error) {
	return Call(ctx, "sin", x)
}

// Sqrt computes the elementwise fast square root of x.
func Sqrt(ctx *Context, x any) (Value, error) {
	return Call(ctx, "sqrt", x)
}

// SqrtRN computes the elementwise precise square root of x, rounding to
// nearest per the IEEE standard. Only fp32 is admissible.
func SqrtRN(ctx *Context, x any) (Value, error) {
	return Call(ctx, "sqrt_rn", x)
}

// Rsqrt computes the elementwise inverse square root of x.
func Rsqrt(ctx *Context, x any) (Value, error) {
	return Call(ctx, "rsqrt", x)
}

// Erf computes the elementwise error function of x.
func Erf(ctx *Context, x any) (Value, error) {
	return Call(ctx, "erf", x)
}

// Floor computes the elementwise floor of x.
func Floor(ctx *Context, x any) (Value, error) {
	return Call(ctx, "floor", x)
}

// Ceil computes the elementwise ceiling of x.
func Ceil(ctx *Context, x any) (Value, error) {
	return Call(ctx, "ceil", x)
}

// Abs computes the elementwise absolute value of x. Unsigned operands are
// returned unchanged without emitting a node.
func Abs(ctx *Context, x any) (Value, error) {
	return Call(ctx, "abs", x)
}

// Fdiv computes the elementwise division of x by y. The ieee flag selects
// IEEE round-to-nearest semantics over the fast hardware divide and is
// resolved at trace time.
func Fdiv(ctx *Context, x, y any, ieee bool) (Value, error) {
	return Call(ctx, "fdiv", x, y, ieee)
}

// DivRN computes the elementwise precise division of x by y, rounding to
// nearest per the IEEE standard. Only fp32 is admissible.
func DivRN(ctx *Context, x, y any) (Value, error) {
	return Call(ctx, "div_rn", x, y)
}

// Umulhi computes the most significant N bits of the 2N-bit product of x
// and y. Only integer dtypes are admissible.
func Umulhi(ctx *Context, x, y any) (Value, error) {
	return Call(ctx, "umulhi", x, y)
}

// Fma computes the elementwise fused multiply-add x*y + z.
func Fma(ctx *Context, x, y, z any) (Value, error) {
	return Call(ctx, "fma", x, y, z)
}
