package ir

import (
	"fmt"
	"strings"
)

// Dump renders the program as deterministic text, one node per line:
//
//	%0 = param : fp32[4]
//	%1 = exp %0 : fp32[4]
//
// The output is stable for a given trace and suitable for golden tests.
func (b *GraphBuilder) Dump() string {
	var sb strings.Builder
	for _, n := range b.nodes {
		fmt.Fprintf(&sb, "%%%d = %s", n.id, n.op)
		if n.value != nil {
			fmt.Fprintf(&sb, " %v", n.value)
		}
		for _, operand := range n.operands {
			fmt.Fprintf(&sb, " %%%d", operand.id)
		}
		fmt.Fprintf(&sb, " : %s\n", n.typ)
	}
	return sb.String()
}
