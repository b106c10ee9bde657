package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/avismetric/metric/pkg/units"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "metric.json")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return p
}

func TestNewFileMissingOrEmpty(t *testing.T) {
	paths := map[string]string{
		"missing": filepath.Join(t.TempDir(), "does-not-exist.json"),
		"empty":   writeFile(t, "  \n"),
	}
	for name, p := range paths {
		t.Run(name, func(t *testing.T) {
			f, err := NewFile(p)
			if err != nil {
				t.Fatalf("NewFile() error = %v", err)
			}
			if got := f.Listen(); got != "127.0.0.1:8383" {
				t.Errorf("Listen() = %q, want default", got)
			}
			if !f.LogRequests() {
				t.Errorf("LogRequests() = false, want true")
			}
			for _, kind := range units.Kinds() {
				want, _ := units.DefaultsOf(kind)
				if got := f.Defaults(kind); got != want {
					t.Errorf("Defaults(%s) = %+v, want %+v", kind, got, want)
				}
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	p := writeFile(t, `{
  "listen": "unix:///tmp/metric.sock",
  "logRequests": false,
  "defaults": {
    "length": {"from": "kilo"},
    "weight": {"from": "tonne", "to": "kg"}
  }
}`)

	f, err := NewFile(p)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	if got := f.Listen(); got != "unix:///tmp/metric.sock" {
		t.Errorf("Listen() = %q", got)
	}
	if f.LogRequests() {
		t.Errorf("LogRequests() = true, want false")
	}

	tests := []struct {
		kind units.Kind
		want units.Defaults
	}{
		{units.Length, units.Defaults{From: "kilo", To: "zenti"}},
		{units.Volume, units.Defaults{From: "m3", To: "l"}},
		{units.Weight, units.Defaults{From: "tonne", To: "kg"}},
	}
	for _, tt := range tests {
		if got := f.Defaults(tt.kind); got != tt.want {
			t.Errorf("Defaults(%s) = %+v, want %+v", tt.kind, got, tt.want)
		}
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad json", `{"listen": `, nil},
		{"unknown unit", `{"defaults": {"volume": {"from": "gallon"}}}`, units.ErrUnknownUnit},
		{"unknown kind", `{"defaults": {"speed": {"from": "kmh"}}}`, units.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFile(writeFile(t, tt.content))
			if err == nil {
				t.Fatalf("NewFile() error = nil, want an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	for _, name := range []string{"metric.json", "metric.yaml", "metric.yml"} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), name)

			f, err := NewFile(p)
			if err != nil {
				t.Fatalf("NewFile() error = %v", err)
			}
			f.SetListen("0.0.0.0:9000")
			f.SetLogRequests(false)
			if err := f.SetDefaults(units.Volume, units.Defaults{From: "hl", To: "cl"}); err != nil {
				t.Fatalf("SetDefaults() error = %v", err)
			}
			if err := f.Save(); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			reloaded, err := NewFile(p)
			if err != nil {
				t.Fatalf("NewFile() error = %v", err)
			}
			if got := reloaded.Listen(); got != "0.0.0.0:9000" {
				t.Errorf("Listen() = %q", got)
			}
			if reloaded.LogRequests() {
				t.Errorf("LogRequests() = true, want false")
			}
			want := units.Defaults{From: "hl", To: "cl"}
			if got := reloaded.Defaults(units.Volume); got != want {
				t.Errorf("Defaults(volume) = %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "metric.yaml")
	content := `listen: unix:///run/metric.sock
defaults:
  length:
    from: kilo
    to: meter
`
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	f, err := NewFile(p)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	if got := f.Listen(); got != "unix:///run/metric.sock" {
		t.Errorf("Listen() = %q", got)
	}
	if !f.LogRequests() {
		t.Errorf("LogRequests() = false, want default true")
	}
	want := units.Defaults{From: "kilo", To: "meter"}
	if got := f.Defaults(units.Length); got != want {
		t.Errorf("Defaults(length) = %+v, want %+v", got, want)
	}

	if err := os.WriteFile(p, []byte("defaults:\n  length:\n    to: parsec\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := NewFile(p); !errors.Is(err, units.ErrUnknownUnit) {
		t.Errorf("NewFile() error = %v, want %v", err, units.ErrUnknownUnit)
	}
}

func TestSetDefaultsRejectsUnknownUnit(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	err := f.SetDefaults(units.Weight, units.Defaults{From: "kg", To: "pound"})
	if !errors.Is(err, units.ErrUnknownUnit) {
		t.Fatalf("SetDefaults() error = %v, want %v", err, units.ErrUnknownUnit)
	}
	want, _ := units.DefaultsOf(units.Weight)
	if got := f.Defaults(units.Weight); got != want {
		t.Errorf("Defaults(weight) = %+v, want unchanged %+v", got, want)
	}
}

func TestNewRawFileConfigFromConfig(t *testing.T) {
	if _, err := NewRawFileConfigFromConfig(nil); err == nil {
		t.Errorf("NewRawFileConfigFromConfig(nil) error = nil")
	}

	f := NewFileFromConfig(nil, "")
	raw, err := NewRawFileConfigFromConfig(f)
	if err != nil {
		t.Fatalf("NewRawFileConfigFromConfig() error = %v", err)
	}
	if raw.Listen == nil || *raw.Listen != f.Listen() {
		t.Errorf("Listen = %v, want %q", raw.Listen, f.Listen())
	}
	if got := raw.Defaults[units.Length]; got.From != "meter" || got.To != "zenti" {
		t.Errorf("Defaults[length] = %+v", got)
	}
}

func TestStatsReport(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	if got := f.StatsReport(); got != "" {
		t.Errorf("StatsReport() = %q, want empty", got)
	}

	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"@every 10m", false},
		{"@hourly", false},
		{"0 */5 * * * *", false},
		{"*/15 * * * *", false},
		{"", false},
		{"every minute", true},
		{"61 * * * *", true},
	}
	for _, tt := range tests {
		err := f.SetStatsReport(tt.schedule)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetStatsReport(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			continue
		}
		if err == nil && f.StatsReport() != tt.schedule {
			t.Errorf("StatsReport() = %q, want %q", f.StatsReport(), tt.schedule)
		}
	}

	p := writeFile(t, `{"statsReport": "not a schedule"}`)
	if _, err := NewFile(p); err == nil {
		t.Errorf("NewFile() with a bad statsReport should fail")
	}
}
