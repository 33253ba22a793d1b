// Package ir provides the append-only intermediate representation that Weft
// programs are traced into.
package ir

// DType represents the scalar element type of a block.
type DType int

// Supported scalar dtypes.
//
// Float8E4B15 is an 8-bit float encoding with a 4-bit exponent and a
// nonstandard bias of 15; it has no native absolute-value or divide
// instructions on current targets, so a few builtins lower it specially.
const (
	Invalid DType = iota
	Int8
	Int32
	Int64
	Uint32
	Uint64
	Float8E4B15
	Float32
	Float64
)

// Size returns the byte size of one element of the dtype.
func (dt DType) Size() int {
	switch dt {
	case Int8, Float8E4B15:
		return 1
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		panic("unknown dtype")
	}
}

// String returns the canonical dtype name. Dtypes are compared by identity;
// the names appear in error messages and IR dumps.
func (dt DType) String() string {
	switch dt {
	case Int8:
		return "int8"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float8E4B15:
		return "fp8e4b15"
	case Float32:
		return "fp32"
	case Float64:
		return "fp64"
	default:
		return "invalid"
	}
}

// IsFloating reports whether the dtype is any floating-point encoding,
// including fp8e4b15.
func (dt DType) IsFloating() bool {
	switch dt {
	case Float8E4B15, Float32, Float64:
		return true
	}
	return false
}

// IsFloat8E4B15 reports whether the dtype is the narrow-biased 8-bit float.
func (dt DType) IsFloat8E4B15() bool {
	return dt == Float8E4B15
}

// IsSignedInt reports whether the dtype is a signed integer.
func (dt DType) IsSignedInt() bool {
	switch dt {
	case Int8, Int32, Int64:
		return true
	}
	return false
}

// IsUnsignedInt reports whether the dtype is an unsigned integer.
func (dt DType) IsUnsignedInt() bool {
	switch dt {
	case Uint32, Uint64:
		return true
	}
	return false
}
