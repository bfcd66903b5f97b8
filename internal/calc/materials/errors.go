package materials

import (
	"fmt"
	"math"
)

// UnknownGradeError reports a grade name missing from the property table.
type UnknownGradeError struct {
	Kind Kind
	Name string
}

func (e *UnknownGradeError) Error() string {
	return fmt.Sprintf("unknown %s grade %q", e.Kind, e.Name)
}

// InvalidInputError reports a numeric field outside its allowed range.
type InvalidInputError struct {
	Field string
	Value float64
	// Reason defaults to "must be greater than zero".
	Reason string
}

func (e *InvalidInputError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be greater than zero"
	}
	return fmt.Sprintf("invalid input: %s %s (got %g)", e.Field, reason, e.Value)
}

// Positive returns an InvalidInputError for the first field whose value is not
// strictly positive. Fields are checked in the order given.
func Positive(fields ...Field) error {
	for _, f := range fields {
		if !(f.Value > 0) {
			return &InvalidInputError{Field: f.Name, Value: f.Value}
		}
	}
	return nil
}

type Field struct {
	Name  string
	Value float64
}

// Finite returns an InvalidInputError for the first field that is infinite or
// NaN. Calculators check their derived values with it.
func Finite(fields ...Field) error {
	for _, f := range fields {
		if math.IsInf(f.Value, 0) || math.IsNaN(f.Value) {
			return &InvalidInputError{Field: f.Name, Value: f.Value, Reason: "is out of range"}
		}
	}
	return nil
}
