package lang

import (
	"errors"
	"fmt"

	"github.com/weft-ml/weft/internal/ir"
)

// Common errors.
var (
	// ErrTypeLegalization is returned when two operand dtypes cannot be
	// unified by any promotion rule. No node has been emitted when it
	// surfaces.
	ErrTypeLegalization = errors.New("no type legalization rule")

	// ErrNotCoercible is returned when a host value cannot be converted
	// into a Value because it has no representable dtype.
	ErrNotCoercible = errors.New("value is not coercible to a block")
)

// DtypeMismatchError reports a builtin call whose operand dtype is outside
// the builtin's admissible set. It is raised before any node is emitted;
// the caller can recover by casting the operand and retrying.
type DtypeMismatchError struct {
	Builtin string
	Got     ir.DType
	Allowed []ir.DType
}

// Error implements the error interface.
func (e *DtypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected dtype in %v, got %s", e.Builtin, e.Allowed, e.Got)
}
