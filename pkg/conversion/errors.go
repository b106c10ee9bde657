package conversion

import "errors"

var (
	// ErrParse is returned when the raw input is not a finite real number.
	ErrParse = errors.New("input is not a number")

	// ErrNegativeValue is returned when the input parses but is below zero.
	ErrNegativeValue = errors.New("value must not be negative")

	// ErrOutOfRange is returned when the converted value overflows float64.
	ErrOutOfRange = errors.New("result is out of range")
)

// NegativeValueNotice is shown to the user when ErrNegativeValue occurs.
const NegativeValueNotice = "Please enter a positive number."
