package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avismetric/metric/pkg/daemon"
	"github.com/avismetric/metric/pkg/events"
	"github.com/avismetric/metric/pkg/version"
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "daemon",
		Short:   "Run the metric HTTP API in the foreground",
		GroupID: gDaemon,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("metric daemon starting")
			return daemon.Run(configPath, listenAddr)
		},
	}
}

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   "Print conversions handled by the daemon as they happen",
		GroupID: gDaemon,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			evCh, err := apiClient.SubscribeEvents(ctx)
			if err != nil {
				return fmt.Errorf("failed to subscribe to events: %w", err)
			}

			for ev := range evCh {
				logrus.WithFields(logrus.Fields{
					"event": ev.Name,
					"data":  string(ev.Data),
				}).Debug("new event")

				switch ev.Name {
				case events.ConversionCompleted:
					p, err := events.DecodeAs[events.ConversionCompletedEvent](ev)
					if err != nil {
						logrus.WithError(err).Errorf("failed to decode %s event", ev.Name)
						continue
					}
					cmd.Printf("%s %s: %s %s -> %s %s\n", color.GreenString("✔"), p.Kind,
						formatNumber(p.Value), p.From, bold("%s", formatNumber(p.Result)), p.Label)
				case events.ConversionRejected:
					p, err := events.DecodeAs[events.ConversionRejectedEvent](ev)
					if err != nil {
						logrus.WithError(err).Errorf("failed to decode %s event", ev.Name)
						continue
					}
					cmd.Printf("%s %s: %q rejected (%s)\n", color.RedString("✘"), p.Kind, p.Input, p.Message)
				}
			}

			return nil
		},
	}
}

func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Short:   "Show daemon activity over the last minute",
		GroupID: gDaemon,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			stats, err := apiClient.GetStats()
			if err != nil {
				return err
			}

			cmd.Printf("Conversions (last minute): %s\n", bold("%d", stats.ConversionsLastMinute))
			cmd.Printf("Rejected inputs (last minute): %s\n", bold("%d", stats.RejectionsLastMinute))
			cmd.Printf("Event subscribers: %s\n", bold("%d", stats.Subscribers))
			if stats.LastConversion != nil {
				cmd.Printf("Last conversion: %s\n", stats.LastConversion.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
