package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avismetric/metric/pkg/conversion"
	"github.com/avismetric/metric/pkg/units"
	"github.com/avismetric/metric/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewConvertCommand() *cobra.Command {
	var (
		from       string
		to         string
		remote     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "convert <kind> <value>",
		Short:   "Convert a value between two units of the same kind",
		GroupID: gBasic,
		Long: `Convert a value between two units of the same kind.

Kind is one of length, volume or weight. Units default to the configured
selector defaults (length: meter to zenti, volume: m3 to l, weight: kg to mg).

Examples:
  metric convert length 1 --from kilo --to meter
  metric convert volume 2.5 --to ml
  metric convert weight 3 --remote`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := units.ParseKind(args[0])
			if err != nil {
				return err
			}

			var res *conversion.Result
			if remote {
				apiClient, err := newAPIClient()
				if err != nil {
					return err
				}
				res, err = apiClient.Convert(kind, args[1], from, to)
				if err != nil {
					return err
				}
			} else {
				conf, err := loadConfig()
				if err != nil {
					return err
				}
				d := conf.Defaults(kind)
				if from == "" {
					from = d.From
				}
				if to == "" {
					to = d.To
				}
				res, err = conversion.ConvertInput(kind, args[1], from, to)
				if err != nil {
					return err
				}
			}

			logrus.WithFields(logrus.Fields{
				"kind":   res.Kind,
				"from":   res.From,
				"to":     res.To,
				"remote": remote,
			}).Debug("converted")

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), res)
			}

			fromLabel, err := units.LabelOf(res.Kind, res.From)
			if err != nil {
				return err
			}
			cmd.Printf("%s %s = %s %s\n", formatNumber(res.Value), fromLabel, bold("%s", formatNumber(res.Result)), res.Label)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&from, "from", "", "source unit key (default from config)")
	f.StringVar(&to, "to", "", "target unit key (default from config)")
	f.BoolVar(&remote, "remote", false, "convert through the metric daemon")
	f.BoolVar(&jsonOutput, "json", false, "print the result as JSON")

	return cmd
}

func NewUnitsCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "units <kind>",
		Short:   "List the units of a kind",
		GroupID: gBasic,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := units.ParseKind(args[0])
			if err != nil {
				return err
			}

			list := units.UnitsOf(kind)
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), list)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, bold("KEY")+"\t"+bold("LABEL")+"\t"+bold("FACTOR"))
			for _, u := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", u.Key, u.Label, formatNumber(u.Factor))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the units as JSON")

	return cmd
}

func NewKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "kinds",
		Short:   "List the quantity kinds",
		GroupID: gBasic,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, k := range units.Kinds() {
				cmd.Println(k)
			}
		},
	}
}

func NewDefaultsCommand() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:     "defaults <kind>",
		Short:   "Show or set the default units of a kind",
		GroupID: gBasic,
		Long: `Show or set the default units of a kind.

Without flags the current defaults are printed. With --from and/or --to the
new defaults are written to the config file. Send SIGHUP to a running daemon
to pick them up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := units.ParseKind(args[0])
			if err != nil {
				return err
			}

			conf, err := loadConfig()
			if err != nil {
				return err
			}

			if from != "" || to != "" {
				d := conf.Defaults(kind)
				if from != "" {
					d.From = from
				}
				if to != "" {
					d.To = to
				}
				if err := conf.SetDefaults(kind, d); err != nil {
					return err
				}
				if err := conf.Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				logrus.Infof("successfully set %s defaults to %s -> %s", kind, d.From, d.To)
				return nil
			}

			d := conf.Defaults(kind)
			cmd.Printf("%s: %s -> %s\n", kind, bold("%s", d.From), bold("%s", d.To))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&from, "from", "", "new default source unit")
	f.StringVar(&to, "to", "", "new default target unit")

	return cmd
}
