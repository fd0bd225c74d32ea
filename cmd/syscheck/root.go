package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"syscheck/internal/conf"
	"syscheck/internal/procfs"
	"syscheck/internal/report"
	"syscheck/internal/system"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// probeOption adjusts the probe before it runs; tests use it to stub host lookups
type probeOption func(*system.Probe)

func newRootCmd(opts ...probeOption) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syscheck",
		Short: "Display memory/cpu usage and system uptime on Linux",
		Long: `syscheck reads CPU, memory, swap and uptime figures from procfs once and
prints a single report. Pass --output csv, or set CSVOUTPUT to any value
other than a false one (CSVOUTPUT=0 and CSVOUTPUT=false keep the text
report), for CSV.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := conf.Load(cmd.Flags())
			if err != nil {
				return err
			}

			log, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			probe := system.NewProbe(procfs.NewReader(cfg.ProcRoot, log), log)
			for _, opt := range opts {
				opt(probe)
			}

			log.Debug("collecting snapshot", zap.String("proc_root", cfg.ProcRoot), zap.Stringer("output", cfg.Output))

			r, err := probe.Collect(cmd.Context())
			if err != nil {
				return err
			}

			// render fully before writing so a failure never leaves half a report
			var buf bytes.Buffer
			if err := report.Write(&buf, cfg.Output, r); err != nil {
				return err
			}
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	conf.BindFlags(cmd.Flags())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newVersionCmd shows version info
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "syscheck %s (%s)\n", Version, Commit)
		},
	}
}
