package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/avismetric/metric/pkg/units"
	"github.com/avismetric/metric/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Listen:      ptr.To("127.0.0.1:8383"),
		LogRequests: ptr.To(true),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// NewFileFromConfig wraps an already decoded config. A nil c yields an
// empty config, which reads as all defaults.
func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	Listen      *string                    `json:"listen,omitempty" yaml:"listen,omitempty"`
	Defaults    map[units.Kind]RawDefaults `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	LogRequests *bool                      `json:"logRequests,omitempty" yaml:"logRequests,omitempty"`
	StatsReport *string                    `json:"statsReport,omitempty" yaml:"statsReport,omitempty"`
}

// RawDefaults overrides the selector defaults of one kind. An empty field
// keeps the table default.
type RawDefaults struct {
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		Listen:      ptr.To(c.Listen()),
		Defaults:    make(map[units.Kind]RawDefaults),
		LogRequests: ptr.To(c.LogRequests()),
		StatsReport: ptr.To(c.StatsReport()),
	}
	for _, kind := range units.Kinds() {
		d := c.Defaults(kind)
		rawConfig.Defaults[kind] = RawDefaults{From: d.From, To: d.To}
	}

	return rawConfig, nil
}

// Validate checks that every configured default names a known kind and a
// unit of that kind, and that the stats report schedule parses.
func (r *RawFileConfig) Validate() error {
	if r.StatsReport != nil && *r.StatsReport != "" {
		if _, err := ScheduleParser.Parse(*r.StatsReport); err != nil {
			return pkgerrors.Wrapf(err, "invalid statsReport schedule %q", *r.StatsReport)
		}
	}
	for kind, d := range r.Defaults {
		if _, err := units.DefaultsOf(kind); err != nil {
			return pkgerrors.Wrapf(err, "invalid defaults")
		}
		for _, key := range []string{d.From, d.To} {
			if key == "" {
				continue
			}
			if _, err := units.Lookup(kind, key); err != nil {
				return pkgerrors.Wrapf(err, "invalid %s defaults", kind)
			}
		}
	}
	return nil
}

func (f *File) Listen() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var listen string

	if f.c.Listen != nil {
		listen = *f.c.Listen
	} else {
		listen = *defaultFileConfig.Listen
	}

	return listen
}

func (f *File) Defaults(kind units.Kind) units.Defaults {
	if f.c == nil {
		panic("config is nil")
	}

	// Unknown kinds have no defaults; callers validate the kind first.
	d, _ := units.DefaultsOf(kind)

	f.mu.RLock()
	defer f.mu.RUnlock()

	if raw, ok := f.c.Defaults[kind]; ok {
		if raw.From != "" {
			d.From = raw.From
		}
		if raw.To != "" {
			d.To = raw.To
		}
	}

	return d
}

func (f *File) LogRequests() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var logRequests bool

	if f.c.LogRequests != nil {
		logRequests = *f.c.LogRequests
	} else {
		logRequests = *defaultFileConfig.LogRequests
	}

	return logRequests
}

func (f *File) StatsReport() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.StatsReport == nil {
		return ""
	}
	return *f.c.StatsReport
}

func (f *File) SetListen(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Listen = &s
}

func (f *File) SetDefaults(kind units.Kind, d units.Defaults) error {
	if f.c == nil {
		panic("config is nil")
	}

	raw := RawDefaults{From: d.From, To: d.To}
	if err := (&RawFileConfig{Defaults: map[units.Kind]RawDefaults{kind: raw}}).Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.c.Defaults == nil {
		f.c.Defaults = make(map[units.Kind]RawDefaults)
	}
	f.c.Defaults[kind] = raw

	return nil
}

func (f *File) SetStatsReport(schedule string) error {
	if f.c == nil {
		panic("config is nil")
	}

	if err := (&RawFileConfig{StatsReport: &schedule}).Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.StatsReport = &schedule

	return nil
}

func (f *File) SetLogRequests(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LogRequests = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if isYAML(f.filepath) {
		err = yaml.Unmarshal(b, &conf)
	} else {
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	if err := conf.Validate(); err != nil {
		return pkgerrors.Wrapf(err, "invalid config in file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	if isYAML(f.filepath) {
		enc := yaml.NewEncoder(fp)
		enc.SetIndent(2)
		err = enc.Encode(f.c)
		if err == nil {
			err = enc.Close()
		}
	} else {
		enc := json.NewEncoder(fp)
		enc.SetIndent("", "  ")
		err = enc.Encode(f.c)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

// isYAML reports whether the config at p is YAML rather than JSON, going by
// its extension.
func isYAML(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	fields := logrus.Fields{
		"listen":      f.Listen(),
		"logRequests": f.LogRequests(),
		"statsReport": f.StatsReport(),
	}
	for _, kind := range units.Kinds() {
		d := f.Defaults(kind)
		fields[kind.String()+"Defaults"] = d.From + "->" + d.To
	}

	return fields
}
