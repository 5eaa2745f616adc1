package crosssection

import (
	"errors"
	"fmt"
)

// ErrDataFormat marks every malformed cross-section input.
var ErrDataFormat = errors.New("crosssection: invalid data format")

// DataFormatError names the offending condition; Row and Column are -1/""
// when they do not apply.
type DataFormatError struct {
	Reason string
	Row    int
	Column string
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Row >= 0 && e.Column != "":
		return fmt.Sprintf("%v: row %d, column %s: %s", ErrDataFormat, e.Row, e.Column, e.Reason)
	case e.Row >= 0:
		return fmt.Sprintf("%v: row %d: %s", ErrDataFormat, e.Row, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%v: column %s: %s", ErrDataFormat, e.Column, e.Reason)
	}
	return fmt.Sprintf("%v: %s", ErrDataFormat, e.Reason)
}

func (e *DataFormatError) Unwrap() error {
	return ErrDataFormat
}

func formatError(reason string, args ...any) *DataFormatError {
	return &DataFormatError{Reason: fmt.Sprintf(reason, args...), Row: -1}
}
