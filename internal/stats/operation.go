package stats

import (
	"strings"

	"github.com/KirkDiggler/stat-engine/internal/errors"
)

// Operation is how a modifier folds its magnitude into a stat.
// Additive modifiers are always folded before multiplicative ones.
type Operation int

const (
	OperationAdditive Operation = iota
	OperationMultiplicative
)

// IsValid reports whether op is one of the known operations
func (op Operation) IsValid() bool {
	return op == OperationAdditive || op == OperationMultiplicative
}

func (op Operation) String() string {
	switch op {
	case OperationAdditive:
		return "additive"
	case OperationMultiplicative:
		return "multiplicative"
	default:
		return "unknown"
	}
}

// ParseOperation maps the textual forms used in configuration files to an Operation
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "additive", "+":
		return OperationAdditive, nil
	case "mul", "mult", "multiplicative", "x":
		return OperationMultiplicative, nil
	default:
		return 0, errors.InvalidArgumentf("unknown modifier operation %q", s).
			WithMeta("operation", s)
	}
}
