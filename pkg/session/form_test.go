package session

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_Editing(t *testing.T) {
	f := NewForm(10, 30)
	assert.Equal(t, "Depth: 10_  Angle: 30", f.String())

	f.Backspace()
	f.Type('2')
	f.Type('x')
	f.Next()
	f.Backspace()
	f.Backspace()
	f.Type('2')
	f.Type('2')
	f.Type('.')
	f.Type('5')

	depth, angle, err := f.Values()
	require.NoError(t, err)
	assert.Equal(t, 12, depth)
	assert.Equal(t, 22.5, angle)
	assert.Equal(t, "Depth: 12  Angle: 22.5_", f.String())
}

func TestForm_ParseError(t *testing.T) {
	f := NewForm(3, 45)
	f.Backspace()

	_, _, err := f.Values()

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "got %v", err)
	assert.Equal(t, "depth", parseErr.Field)

	f.Backspace()
	f.Backspace()
	assert.Equal(t, "", f.Depth)
}

func TestForm_Adjust(t *testing.T) {
	tcs := []struct {
		name         string
		depth, angle string
		dDepth       int
		dAngle       int
		wantDepth    string
		wantAngle    string
	}{
		{name: "deeper", depth: "10", angle: "30", dDepth: 1, wantDepth: "11", wantAngle: "30"},
		{name: "depth floor", depth: "1", angle: "30", dDepth: -1, wantDepth: "1", wantAngle: "30"},
		{name: "wider", depth: "4", angle: "22.5", dAngle: 1, wantDepth: "4", wantAngle: "27.5"},
		{name: "narrower", depth: "4", angle: "30", dAngle: -2, wantDepth: "4", wantAngle: "20"},
		{name: "unparsable kept", depth: "", angle: "3x", dDepth: 1, dAngle: 1, wantDepth: "", wantAngle: "3x"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			f := &Form{Depth: tc.depth, Angle: tc.angle}
			f.Adjust(tc.dDepth, tc.dAngle)

			assert.Equal(t, tc.wantDepth, f.Depth)
			assert.Equal(t, tc.wantAngle, f.Angle)
		})
	}
}
