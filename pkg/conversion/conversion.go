// Package conversion converts values between units of the same kind by
// scaling linearly through the kind's base unit.
package conversion

import (
	"math"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/avismetric/metric/pkg/units"
)

// Result is a completed conversion.
type Result struct {
	Kind   units.Kind `json:"kind"`
	Value  float64    `json:"value"`
	From   string     `json:"from"`
	To     string     `json:"to"`
	Result float64    `json:"result"`
	Label  string     `json:"label"`
}

// Convert returns value expressed in unit to, given it is expressed in
// unit from. Both units must belong to kind.
func Convert(kind units.Kind, value float64, from, to string) (float64, error) {
	fromFactor, err := units.FactorOf(kind, from)
	if err != nil {
		return 0, err
	}
	toFactor, err := units.FactorOf(kind, to)
	if err != nil {
		return 0, err
	}

	// v*f/f is not always v in floating point.
	if from == to {
		return value, nil
	}

	return value * fromFactor / toFactor, nil
}

// ParseValue interprets raw user input as a non-negative finite number.
func ParseValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, pkgerrors.Wrap(ErrParse, "empty input")
	}

	// ParseFloat also takes hex floats such as "0x1p4".
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return 0, pkgerrors.Wrapf(ErrParse, "%q", raw)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, pkgerrors.Wrapf(ErrParse, "%q", raw)
	}

	if v < 0 {
		return 0, pkgerrors.Wrapf(ErrNegativeValue, "got %v", v)
	}

	// Normalize -0.
	if v == 0 {
		v = 0
	}

	return v, nil
}

// ConvertInput parses raw and converts it from one unit to another. On any
// error no result is produced.
func ConvertInput(kind units.Kind, raw, from, to string) (*Result, error) {
	v, err := ParseValue(raw)
	if err != nil {
		return nil, err
	}

	out, err := Convert(kind, v, from, to)
	if err != nil {
		return nil, err
	}
	if math.IsInf(out, 0) {
		return nil, pkgerrors.Wrapf(ErrOutOfRange, "%v %s in %s", v, from, to)
	}

	label, err := units.LabelOf(kind, to)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:   kind,
		Value:  v,
		From:   from,
		To:     to,
		Result: out,
		Label:  label,
	}, nil
}
