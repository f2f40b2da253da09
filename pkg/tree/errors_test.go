package tree

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tcs := []struct {
		name    string
		err     error
		invalid bool
	}{
		{name: "depth 1", err: ValidateDepth(1)},
		{name: "depth 0", err: ValidateDepth(0), invalid: true},
		{name: "negative angle", err: ValidateAngle(-400)},
		{name: "NaN angle", err: ValidateAngle(math.NaN()), invalid: true},
		{name: "growth 0", err: ValidateGrowthAngle(0)},
		{name: "growth 90", err: ValidateGrowthAngle(90)},
		{name: "growth below", err: ValidateGrowthAngle(-0.5), invalid: true},
		{name: "growth above", err: ValidateGrowthAngle(90.5), invalid: true},
		{name: "growth NaN", err: ValidateGrowthAngle(math.NaN()), invalid: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.invalid {
				assert.NoError(t, tc.err)
				return
			}
			assert.True(t, errors.Is(tc.err, ErrInvalidParameter), "got %v", tc.err)
		})
	}
}
