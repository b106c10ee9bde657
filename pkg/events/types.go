package events

import "encoding/json"

// Event name constants
const (
	ConversionCompleted = "conversion.completed"
	ConversionRejected  = "conversion.rejected"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// ConversionCompletedEvent is the typed payload for conversion.completed.
type ConversionCompletedEvent struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
	Label  string  `json:"label"`
	Ts     int64   `json:"ts"`
}

// ConversionRejectedEvent is the typed payload for conversion.rejected.
type ConversionRejectedEvent struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Input   string `json:"input"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Ts      int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.ConversionCompletedEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Result, payload.Label)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
