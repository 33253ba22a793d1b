package lang

import (
	"fmt"
	"sort"

	"github.com/weft-ml/weft/internal/ir"
)

// emitFunc maps validated, legalized operands to exactly one new Value.
// The ieee flag is meaningful only for entries declaring hostFlag.
type emitFunc func(ctx *Context, args []Value, ieee bool) (Value, error)

// Builtin is one entry of the math catalog: a name, an operand arity, an
// optional admissible dtype set, a legalization plan, and an emission rule.
// Entries are constructed once at package init and are read-only afterwards.
type Builtin struct {
	// Name is the DSL-visible name of the builtin.
	Name string

	// Arity is the number of block operands (1-3).
	Arity int

	// Allowed is the admissible dtype set for block operands. A nil set
	// imposes no restriction.
	Allowed []ir.DType

	// unify drives pairwise type legalization across operands before
	// emission.
	unify bool

	// hostFlag marks an entry accepting one trailing host bool (fdiv's
	// IEEE-rounding toggle). The flag is resolved at call time and never
	// becomes an operand.
	hostFlag bool

	emit emitFunc
}

// call is the generic driver shared by every catalog entry:
// validate dtypes, coerce operands, legalize, emit.
func (b *Builtin) call(ctx *Context, args ...any) (Value, error) {
	ieee := false
	if b.hostFlag && len(args) == b.Arity+1 {
		flag, ok := args[b.Arity].(bool)
		if !ok {
			return Value{}, fmt.Errorf("%s: flag operand must be bool, got %T", b.Name, args[b.Arity])
		}
		ieee = flag
		args = args[:b.Arity]
	}
	if len(args) != b.Arity {
		return Value{}, fmt.Errorf("%s: expected %d operands, got %d", b.Name, b.Arity, len(args))
	}

	// Admissibility runs before coercion so a rejected call leaves no
	// partial IR. Host scalars have no dtype yet and are exempt.
	if err := b.checkDtypes(args); err != nil {
		return Value{}, err
	}

	vals := make([]Value, len(args))
	for i, arg := range args {
		v, err := ctx.ToValue(arg)
		if err != nil {
			return Value{}, fmt.Errorf("%s: operand %d: %w", b.Name, i, err)
		}
		vals[i] = v
	}

	if b.unify {
		if err := b.legalize(ctx, vals); err != nil {
			return Value{}, err
		}
	}
	return b.emit(ctx, vals, ieee)
}

// checkDtypes scans every operand that is already a Value against the
// admissible set.
func (b *Builtin) checkDtypes(args []any) error {
	if b.Allowed == nil {
		return nil
	}
	for _, arg := range args {
		v, ok := arg.(Value)
		if !ok {
			continue
		}
		if !dtypeIn(v.DType(), b.Allowed) {
			return &DtypeMismatchError{Builtin: b.Name, Got: v.DType(), Allowed: b.Allowed}
		}
	}
	return nil
}

// legalize unifies operand types in place. The three-operand sequence is
// transitive on purpose: each pairwise call may only rewrite one operand,
// so the last pair's output is authoritative for all three. It must not be
// generalized to a naive N-operand loop.
func (b *Builtin) legalize(ctx *Context, vals []Value) error {
	var err error
	switch len(vals) {
	case 2:
		vals[0], vals[1], err = ctx.LegalizePair(vals[0], vals[1])
		return err
	case 3:
		x, y, z := vals[0], vals[1], vals[2]
		if x, y, err = ctx.LegalizePair(x, y); err != nil {
			return err
		}
		if z, x, err = ctx.LegalizePair(z, x); err != nil {
			return err
		}
		if z, y, err = ctx.LegalizePair(z, y); err != nil {
			return err
		}
		vals[0], vals[1], vals[2] = x, y, z
		return nil
	default:
		panic(fmt.Sprintf("%s: no legalization plan for arity %d", b.Name, len(vals)))
	}
}

func dtypeIn(dt ir.DType, set []ir.DType) bool {
	for _, d := range set {
		if d == dt {
			return true
		}
	}
	return false
}

// Admissible dtype sets. The round-to-nearest precise variants are
// intentionally narrower than their fast counterparts.
var (
	wideFloatDtypes = []ir.DType{ir.Float32, ir.Float64}
	intDtypes       = []ir.DType{ir.Int32, ir.Int64, ir.Uint32, ir.Uint64}
	fp32Only        = []ir.DType{ir.Float32}
)

// unaryBuiltin builds a catalog entry mapping one validated operand to one
// operation node of the same type.
func unaryBuiltin(name string, allowed []ir.DType, op ir.OpCode) *Builtin {
	return &Builtin{
		Name:    name,
		Arity:   1,
		Allowed: allowed,
		emit: func(ctx *Context, args []Value, _ bool) (Value, error) {
			x := args[0]
			typ := x.Type()
			return NewValue(ctx.builder.NewNode(op, typ, x.Node()), typ), nil
		},
	}
}

// binaryBuiltin builds a catalog entry legalizing two operands to a common
// type and mapping them to one operation node of that type.
func binaryBuiltin(name string, allowed []ir.DType, op ir.OpCode) *Builtin {
	return &Builtin{
		Name:    name,
		Arity:   2,
		Allowed: allowed,
		unify:   true,
		emit: func(ctx *Context, args []Value, _ bool) (Value, error) {
			x, y := args[0], args[1]
			typ := x.Type()
			return NewValue(ctx.builder.NewNode(op, typ, x.Node(), y.Node()), typ), nil
		},
	}
}

// emitAbs branches on the operand's dtype category. The fp8e4b15 encoding
// has no native absolute-value instruction, so its sign bit is cleared with
// an 8-bit mask instead. Unsigned values are returned as-is: emitting a
// node for them would be dead IR.
func emitAbs(ctx *Context, args []Value, _ bool) (Value, error) {
	x := args[0]
	dt := x.DType()
	switch {
	case dt.IsFloat8E4B15():
		mask := ctx.Full(x.Shape(), int8(0x7F), ir.Int8)
		typ := x.Type()
		return NewValue(ctx.builder.NewNode(ir.OpAnd, typ, x.Node(), mask.Node()), typ), nil
	case dt.IsFloating():
		typ := x.Type()
		return NewValue(ctx.builder.NewNode(ir.OpFAbs, typ, x.Node()), typ), nil
	case dt.IsSignedInt():
		typ := x.Type()
		return NewValue(ctx.builder.NewNode(ir.OpIAbs, typ, x.Node()), typ), nil
	case dt.IsUnsignedInt():
		return x, nil
	default:
		panic(fmt.Sprintf("abs: unexpected dtype %s", dt))
	}
}

// emitFma maps the three legalized operands to one fused multiply-add node.
func emitFma(ctx *Context, args []Value, _ bool) (Value, error) {
	x, y, z := args[0], args[1], args[2]
	typ := x.Type()
	return NewValue(ctx.builder.NewNode(ir.OpFma, typ, x.Node(), y.Node(), z.Node()), typ), nil
}

// emitFdiv normalizes its operands and delegates the actual division
// construction to the context's division routine.
func emitFdiv(ctx *Context, args []Value, ieee bool) (Value, error) {
	return ctx.fdiv(args[0], args[1], ieee)
}

// catalog is the fixed set of math builtins. It is built once and never
// mutated, so lookups are safe to share across goroutines.
var catalog = []*Builtin{
	unaryBuiltin("exp", wideFloatDtypes, ir.OpExp),
	unaryBuiltin("exp2", wideFloatDtypes, ir.OpExp2),
	unaryBuiltin("log", wideFloatDtypes, ir.OpLog),
	unaryBuiltin("log2", wideFloatDtypes, ir.OpLog2),
	unaryBuiltin("cos", wideFloatDtypes, ir.OpCos),
	unaryBuiltin("sin", wideFloatDtypes, ir.OpSin),
	unaryBuiltin("sqrt", wideFloatDtypes, ir.OpSqrt),
	unaryBuiltin("sqrt_rn", fp32Only, ir.OpPreciseSqrt),
	unaryBuiltin("rsqrt", wideFloatDtypes, ir.OpRsqrt),
	unaryBuiltin("erf", wideFloatDtypes, ir.OpErf),
	unaryBuiltin("floor", wideFloatDtypes, ir.OpFloor),
	unaryBuiltin("ceil", wideFloatDtypes, ir.OpCeil),
	{Name: "abs", Arity: 1, emit: emitAbs},
	{Name: "fdiv", Arity: 2, hostFlag: true, emit: emitFdiv},
	binaryBuiltin("div_rn", fp32Only, ir.OpPreciseDiv),
	binaryBuiltin("umulhi", intDtypes, ir.OpUmulhi),
	{Name: "fma", Arity: 3, unify: true, emit: emitFma},
}

// registry maps builtin names to descriptors. Built once at init, read-only
// afterwards; this is what the tracing front-end intercepts DSL calls
// through.
var registry = func() map[string]*Builtin {
	m := make(map[string]*Builtin, len(catalog))
	for _, b := range catalog {
		if _, dup := m[b.Name]; dup {
			panic("duplicate builtin " + b.Name)
		}
		m[b.Name] = b
	}
	return m
}()

// Lookup returns the catalog entry for a builtin name.
func Lookup(name string) (*Builtin, bool) {
	b, ok := registry[name]
	return b, ok
}

// Names returns the sorted names of all registered builtins.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call dispatches a builtin by name with untyped operands. This is the
// interception surface the tracing machinery routes DSL-authored calls
// through.
func Call(ctx *Context, name string, args ...any) (Value, error) {
	b, ok := registry[name]
	if !ok {
		return Value{}, fmt.Errorf("unknown builtin: %s", name)
	}
	return b.call(ctx, args...)
}
