package main

import (
	"time"

	"github.com/identifying-codes/mics/pkg/api/mics"
	"github.com/identifying-codes/mics/pkg/report"
	"github.com/identifying-codes/mics/pkg/sat"
	"github.com/spf13/cobra"
)

type solveOpts struct {
	graphOpts
	timeout time.Duration
	workers int
	output  string
}

var solveopts = solveOpts{}

func NewSolveCmd() *cobra.Command {

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "computes a minimum identifying code set",
		Long: `collapses twin nodes of the given graph and computes a minimum identifying code set of the reduced graph
with an exact pseudo-boolean solver`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &solveopts.graphOpts, func(cfg *mics.Config) {
				flags := cmd.Flags()
				if flags.Changed("timeout") {
					cfg.Timeout = durationFlag(solveopts.timeout)
				}
				if flags.Changed("workers") {
					cfg.Workers = solveopts.workers
				}
				if flags.Changed("output") {
					cfg.Output = solveopts.output
				}
			})
			if err != nil {
				return err
			}
			r, err := solve(cmd.Context(), cfg, sat.NewPBSolver())
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), r, cfg.Output)
		},
	}

	addGraphFlags(solveCmd, &solveopts.graphOpts)
	solveCmd.Flags().DurationVar(&solveopts.timeout, "timeout", 0, "maximum time the solver may run, 0 means no limit")
	solveCmd.Flags().IntVarP(&solveopts.workers, "workers", "w", 1, "goroutines generating uniqueness constraints")
	solveCmd.Flags().StringVarP(&solveopts.output, "output", "o", report.FormatText, "report format (text, yaml, json)")
	return solveCmd
}
