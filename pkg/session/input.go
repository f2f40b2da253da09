package session

import (
	"fmt"
	"strconv"
	"strings"
)

// A ParseError reports a field that is not a number.
type ParseError struct {
	Field string
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: please enter a number", e.Field, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseInput parses the depth and angle fields as typed by a user.
func ParseInput(depthText, angleText string) (int, float64, error) {
	depthText, angleText = strings.TrimSpace(depthText), strings.TrimSpace(angleText)

	depth, err := strconv.Atoi(depthText)
	if err != nil {
		return 0, 0, &ParseError{Field: "depth", Text: depthText, Err: err}
	}

	angle, err := strconv.ParseFloat(angleText, 64)
	if err != nil {
		return 0, 0, &ParseError{Field: "angle", Text: angleText, Err: err}
	}

	return depth, angle, nil
}
