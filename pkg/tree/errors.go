package tree

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidParameter marks numeric input that is outside the allowed range.
var ErrInvalidParameter = errors.New("invalid parameter")

const (
	MinGrowthAngle = 0.0
	MaxGrowthAngle = 90.0
)

// ValidateDepth rejects depths a full draw cannot start from.
func ValidateDepth(depth int) error {
	if depth < 1 {
		return errors.Wrapf(ErrInvalidParameter, "depth must be at least 1, got %d", depth)
	}
	return nil
}

// ValidateAngle rejects angles that are not finite.
func ValidateAngle(angle float64) error {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return errors.Wrapf(ErrInvalidParameter, "angle must be a finite number, got %v", angle)
	}
	return nil
}

// ValidateGrowthAngle rejects angles outside [MinGrowthAngle, MaxGrowthAngle].
func ValidateGrowthAngle(angle float64) error {
	if !(angle >= MinGrowthAngle && angle <= MaxGrowthAngle) {
		return errors.Wrapf(ErrInvalidParameter,
			"angle must be between %.0f and %.0f degrees, got %v", MinGrowthAngle, MaxGrowthAngle, angle)
	}
	return nil
}
