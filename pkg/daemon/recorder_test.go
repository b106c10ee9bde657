package daemon

import (
	"sync"
	"testing"
	"time"
)

func TestTimeSeriesRecorder_GetRecordsIn(t *testing.T) {
	type fields struct {
		MaxRecordCount int
		Records        []time.Time
	}
	type args struct {
		last time.Duration
	}
	tests := []struct {
		name   string
		fields fields
		args   args
		want   int
	}{
		{
			name: "test no records",
			fields: fields{
				MaxRecordCount: 10,
			},
			args: args{
				last: time.Minute,
			},
			want: 0,
		},
		{
			name: "test records inside window",
			fields: fields{
				MaxRecordCount: 10,
				Records: []time.Time{
					time.Now().Add(-time.Second * 31),
					time.Now().Add(-time.Second * 20),
					time.Now().Add(-time.Second * 10),
				},
			},
			args: args{
				last: time.Second * 40,
			},
			want: 3,
		},
		{
			name: "test records partly outside window",
			fields: fields{
				MaxRecordCount: 10,
				Records: []time.Time{
					time.Now().Add(-time.Second * 70),
					time.Now().Add(-time.Second * 60),
					time.Now().Add(-time.Second * 40),
					time.Now().Add(-time.Second * 30),
					time.Now().Add(-time.Second * 5),
				},
			},
			args: args{
				last: time.Second * 50,
			},
			want: 3,
		},
		{
			name: "test all records too old",
			fields: fields{
				MaxRecordCount: 10,
				Records: []time.Time{
					time.Now().Add(-time.Hour),
					time.Now().Add(-time.Minute * 30),
				},
			},
			args: args{
				last: time.Minute,
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &TimeSeriesRecorder{
				MaxRecordCount: tt.fields.MaxRecordCount,
				Records:        tt.fields.Records,
				mu:             &sync.Mutex{},
			}
			if got := r.GetRecordsIn(tt.args.last); got != tt.want {
				t.Errorf("GetRecordsIn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeSeriesRecorder_MaxRecordCount(t *testing.T) {
	r := NewTimeSeriesRecorder(3)
	for i := 0; i < 5; i++ {
		r.AddRecordNow()
	}

	if got := len(r.Records); got != 3 {
		t.Errorf("len(Records) = %d, want 3", got)
	}
	if got := r.GetRecordsIn(time.Minute); got != 3 {
		t.Errorf("GetRecordsIn() = %d, want 3", got)
	}
	if r.GetLastRecord().IsZero() {
		t.Errorf("GetLastRecord() is zero")
	}
}

func TestTimeSeriesRecorder_GetLastRecordEmpty(t *testing.T) {
	r := NewTimeSeriesRecorder(3)
	if got := r.GetLastRecord(); !got.IsZero() {
		t.Errorf("GetLastRecord() = %v, want zero", got)
	}
}

func TestTimeSeriesRecorder_MaxAge(t *testing.T) {
	r := NewTimeSeriesRecorderWithMaxAge(time.Minute)

	now := time.Now()
	r.AddRecord(now.Add(-2 * time.Minute))
	r.AddRecord(now.Add(-90 * time.Second))
	for i := 0; i < 5000; i++ {
		r.AddRecord(now)
	}

	if got := len(r.Records); got != 5000 {
		t.Errorf("len(Records) = %d, want 5000", got)
	}
	if got := r.GetRecordsIn(time.Minute); got != 5000 {
		t.Errorf("GetRecordsIn() = %d, want 5000", got)
	}
}
