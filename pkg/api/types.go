// Package api defines the JSON contract between the metric daemon and its
// clients.
package api

import (
	"errors"
	"time"

	"github.com/avismetric/metric/pkg/conversion"
	"github.com/avismetric/metric/pkg/units"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeParseError    = "parse_error"
	CodeNegativeValue = "negative_value"
	CodeOutOfRange    = "out_of_range"
	CodeUnknownUnit   = "unknown_unit"
	CodeUnknownKind   = "unknown_kind"
	CodeBadRequest    = "bad_request"
	CodeInternal      = "internal"
)

// ConvertRequest is the body of POST /convert. Value is the raw user input
// and is parsed by the daemon. Empty From or To fall back to the configured
// defaults.
type ConvertRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// ErrorResponse is returned with every non-2xx status. Notice carries the
// text to show the user, if any.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Notice string `json:"notice,omitempty"`
}

// Stats is the body of GET /stats.
type Stats struct {
	ConversionsLastMinute int        `json:"conversionsLastMinute"`
	RejectionsLastMinute  int        `json:"rejectionsLastMinute"`
	Subscribers           int        `json:"subscribers"`
	LastConversion        *time.Time `json:"lastConversion,omitempty"`
}

var codes = []struct {
	code string
	err  error
}{
	{CodeParseError, conversion.ErrParse},
	{CodeNegativeValue, conversion.ErrNegativeValue},
	{CodeOutOfRange, conversion.ErrOutOfRange},
	{CodeUnknownUnit, units.ErrUnknownUnit},
	{CodeUnknownKind, units.ErrUnknownKind},
}

// CodeOf returns the error code matching err, or CodeInternal.
func CodeOf(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}

// SentinelOf returns the sentinel error behind code, or nil.
func SentinelOf(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}
