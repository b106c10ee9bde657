package main

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"

	"github.com/avismetric/metric/pkg/client"
	"github.com/avismetric/metric/pkg/config"
)

func loadConfig() (*config.File, error) {
	return config.NewFile(configPath)
}

// daemonAddress returns the --listen flag, or the configured address.
func daemonAddress() (string, error) {
	if listenAddr != "" {
		return listenAddr, nil
	}
	conf, err := loadConfig()
	if err != nil {
		return "", err
	}
	return conf.Listen(), nil
}

func newAPIClient() (*client.Client, error) {
	addr, err := daemonAddress()
	if err != nil {
		return nil, err
	}
	return client.NewClient(addr)
}

// formatNumber prints v in plain decimal notation unless it is very large
// or very small.
func formatNumber(v float64) string {
	abs := math.Abs(v)
	if v == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
