package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avismetric/metric/pkg/client"
	"github.com/avismetric/metric/pkg/conversion"
	"github.com/avismetric/metric/pkg/units"
)

var (
	logLevel   = "info"
	configPath = "/etc/metric.json"
	// listenAddr overrides the configured daemon address when set.
	listenAddr = ""
)

var (
	gBasic        = "Basic:"
	gDaemon       = "Daemon:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gBasic,
		gDaemon,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: metric daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'metric daemon' or check the --listen address.")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Check the permissions of the daemon socket")
	case errors.Is(err, conversion.ErrNegativeValue):
		fmt.Fprintln(os.Stderr, "\n"+conversion.NegativeValueNotice)
	case errors.Is(err, units.ErrUnknownUnit):
		fmt.Fprintln(os.Stderr, "\nRun 'metric units <kind>' to list the valid units.")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "metric converts lengths, volumes and weights between units",
		Long: `metric converts lengths, volumes and weights between units.

Conversions run locally by default. 'metric daemon' serves the same
conversions over HTTP for other frontends.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&listenAddr, "listen", listenAddr, "daemon address, host:port or unix:///path (default from config)")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewConvertCommand(),
		NewUnitsCommand(),
		NewKindsCommand(),
		NewDefaultsCommand(),
		NewDaemonCommand(),
		NewWatchCommand(),
		NewStatsCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
