package session

import (
	"fmt"
	"strconv"
	"strings"
)

type Field int

const (
	DepthField Field = iota
	AngleField
)

// A Form holds the depth and angle text fields as the user is typing them.
type Form struct {
	Depth, Angle string
	Focus        Field
}

func NewForm(depth int, angle float64) *Form {
	return &Form{
		Depth: strconv.Itoa(depth),
		Angle: strconv.FormatFloat(angle, 'f', -1, 64),
	}
}

func (f *Form) field() *string {
	if f.Focus == AngleField {
		return &f.Angle
	}
	return &f.Depth
}

// Type appends r to the focused field. Only characters that can appear in a
// number are accepted.
func (f *Form) Type(r rune) {
	switch {
	case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
		*f.field() += string(r)
	}
}

func (f *Form) Backspace() {
	s := f.field()
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

// Next moves focus to the other field.
func (f *Form) Next() {
	f.Focus = 1 - f.Focus
}

// Values parses both fields.
func (f *Form) Values() (int, float64, error) {
	return ParseInput(f.Depth, f.Angle)
}

func (f *Form) String() string {
	depth, angle := f.Depth, f.Angle
	if f.Focus == DepthField {
		depth += "_"
	} else {
		angle += "_"
	}
	return fmt.Sprintf("Depth: %s  Angle: %s", depth, angle)
}

// AngleStep is how far the angle moves per Adjust step.
const AngleStep = 5.0

// Adjust nudges the fields by depthSteps and angleSteps*AngleStep. A field
// that does not parse is left as typed. Depth never drops below 1.
func (f *Form) Adjust(depthSteps, angleSteps int) {
	if depth, err := strconv.Atoi(strings.TrimSpace(f.Depth)); err == nil && depthSteps != 0 {
		f.Depth = strconv.Itoa(max(depth+depthSteps, 1))
	}
	if angle, err := strconv.ParseFloat(strings.TrimSpace(f.Angle), 64); err == nil && angleSteps != 0 {
		f.Angle = strconv.FormatFloat(angle+float64(angleSteps)*AngleStep, 'f', -1, 64)
	}
}
