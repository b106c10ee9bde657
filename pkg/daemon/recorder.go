package daemon

import (
	"sync"
	"time"
)

// TimeSeriesRecorder records event times. Records beyond MaxRecordCount or
// older than MaxAge are dropped; a zero limit is not enforced.
type TimeSeriesRecorder struct {
	MaxRecordCount int
	MaxAge         time.Duration
	Records        []time.Time
	mu             *sync.Mutex
}

// NewTimeSeriesRecorder returns a new TimeSeriesRecorder.
func NewTimeSeriesRecorder(maxRecordCount int) *TimeSeriesRecorder {
	return &TimeSeriesRecorder{
		MaxRecordCount: maxRecordCount,
		Records:        make([]time.Time, 0),
		mu:             &sync.Mutex{},
	}
}

// NewTimeSeriesRecorderWithMaxAge returns a recorder that keeps every record
// younger than maxAge.
func NewTimeSeriesRecorderWithMaxAge(maxAge time.Duration) *TimeSeriesRecorder {
	return &TimeSeriesRecorder{
		MaxAge:  maxAge,
		Records: make([]time.Time, 0),
		mu:      &sync.Mutex{},
	}
}

// AddRecordNow adds a new record with the current time.
func (r *TimeSeriesRecorder) AddRecordNow() {
	r.AddRecord(time.Now())
}

// AddRecord adds a new record.
func (r *TimeSeriesRecorder) AddRecord(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Strip monotonic clock reading.
	t = t.Round(0)

	if r.MaxAge > 0 {
		drop := 0
		for drop < len(r.Records) && t.Sub(r.Records[drop]) > r.MaxAge {
			drop++
		}
		r.Records = r.Records[drop:]
	}
	if r.MaxRecordCount > 0 && len(r.Records) >= r.MaxRecordCount {
		r.Records = r.Records[1:]
	}
	r.Records = append(r.Records, t)
}

// GetRecordsIn returns the number of records in the last duration.
func (r *TimeSeriesRecorder) GetRecordsIn(last time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for i := len(r.Records) - 1; i >= 0; i-- {
		if time.Since(r.Records[i]) > last {
			break
		}
		count++
	}

	return count
}

// GetLastRecord returns the last record.
func (r *TimeSeriesRecorder) GetLastRecord() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Records) == 0 {
		return time.Time{}
	}

	return r.Records[len(r.Records)-1]
}
