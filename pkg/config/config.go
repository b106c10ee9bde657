package config

import (
	"github.com/robfig/cron/v3"

	"github.com/avismetric/metric/pkg/units"
)

// ScheduleParser parses the statsReport schedule: standard cron fields with
// optional seconds, or descriptors such as "@hourly" and "@every 10m".
var ScheduleParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

type Config interface {
	// Listen is the daemon address, "host:port" or "unix:///path".
	Listen() string
	// Defaults returns the selector defaults of kind, falling back to the
	// unit table defaults.
	Defaults(kind units.Kind) units.Defaults
	LogRequests() bool
	// StatsReport is the cron schedule of the daemon activity log line.
	// Empty disables it.
	StatsReport() string

	SetListen(string)
	// SetDefaults validates and stores the selector defaults of kind.
	SetDefaults(kind units.Kind, d units.Defaults) error
	SetLogRequests(bool)
	SetStatsReport(string) error

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
