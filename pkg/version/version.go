package version

// Set at build time with -ldflags "-X github.com/avismetric/metric/pkg/version.Version=...".
var (
	Version   = "UNKNOWN"
	GitCommit = "UNKNOWN"
)
