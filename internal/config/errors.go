package config

import (
	"errors"
	"fmt"
)

var ErrParameterValidation = errors.New("config: invalid parameter")

// ParameterValidationError names one out-of-range, missing or ambiguous
// parameter.
type ParameterValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParameterValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%v: %s: %s", ErrParameterValidation, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s = %v: %s", ErrParameterValidation, e.Field, e.Value, e.Reason)
}

func (e *ParameterValidationError) Unwrap() error {
	return ErrParameterValidation
}
