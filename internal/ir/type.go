package ir

// Type describes the result of an operation: a block shape plus the scalar
// dtype of its elements. Types are immutable value types.
type Type struct {
	Shape Shape
	DType DType
}

// ScalarType returns the type of a scalar (zero-dimensional block).
func ScalarType(dt DType) Type {
	return Type{DType: dt}
}

// BlockType returns the type of a block with the given shape and dtype.
func BlockType(shape Shape, dt DType) Type {
	return Type{Shape: shape.Clone(), DType: dt}
}

// WithDType returns a copy of the type with the scalar dtype replaced.
func (t Type) WithDType(dt DType) Type {
	return Type{Shape: t.Shape, DType: dt}
}

// Equal checks if two types have the same shape and dtype.
func (t Type) Equal(other Type) bool {
	return t.DType == other.DType && t.Shape.Equal(other.Shape)
}

// String formats the type as "dtype[shape]", e.g. "fp32[4,4]".
func (t Type) String() string {
	return t.DType.String() + t.Shape.String()
}
