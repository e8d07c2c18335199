package stats

import (
	"github.com/KirkDiggler/stat-engine/internal/errors"
)

// Descriptor is an immutable (operation, magnitude) pair.
// A zero Descriptor is Additive 0. No-op magnitudes are kept as given.
type Descriptor struct {
	operation Operation
	magnitude float64
}

// NewDescriptor validates op and returns the descriptor
func NewDescriptor(op Operation, magnitude float64) (Descriptor, error) {
	if !op.IsValid() {
		return Descriptor{}, errors.InvalidArgumentf("invalid modifier operation %d", int(op)).
			WithMeta("operation", int(op))
	}
	return Descriptor{operation: op, magnitude: magnitude}, nil
}

// Add returns an additive descriptor
func Add(magnitude float64) Descriptor {
	return Descriptor{operation: OperationAdditive, magnitude: magnitude}
}

// Mul returns a multiplicative descriptor
func Mul(magnitude float64) Descriptor {
	return Descriptor{operation: OperationMultiplicative, magnitude: magnitude}
}

func (d Descriptor) Operation() Operation {
	return d.operation
}

func (d Descriptor) Magnitude() float64 {
	return d.magnitude
}

// Equal compares operation and magnitude
func (d Descriptor) Equal(other Descriptor) bool {
	return d.operation == other.operation && d.magnitude == other.magnitude
}

// apply folds the descriptor into value
func (d Descriptor) apply(value float64) float64 {
	if d.operation == OperationMultiplicative {
		return value * d.magnitude
	}
	return value + d.magnitude
}

// String renders "+5", "-4" or "x1.5"
func (d Descriptor) String() string {
	if d.operation == OperationMultiplicative {
		return "x" + formatValue(d.magnitude)
	}
	if d.magnitude >= 0 {
		return "+" + formatValue(d.magnitude)
	}
	return formatValue(d.magnitude)
}
