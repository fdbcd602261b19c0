package main

import (
	"fmt"
	"os"

	"github.com/identifying-codes/mics/pkg/graph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type reduceOpts struct {
	graphOpts
	out string
}

var reduceopts = reduceOpts{}

func NewReduceCmd() *cobra.Command {

	reduceCmd := &cobra.Command{
		Use:   "reduce",
		Short: "debug command which writes the twin-collapsed graph as an edge list",
		Long: `collapses twin nodes and writes the reduced graph as an edge list. This is mostly a debug command
which allows inspecting the problem the solver actually sees.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &reduceopts.graphOpts, nil)
			if err != nil {
				return err
			}
			_, reduction, err := loadAndCollapse(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			for i := range reduction.Classes {
				logrus.Infof("Node %s: %v", reduction.Graph.Label(i), reduction.OriginalLabels(i))
			}
			if reduceopts.out == "-" {
				return graph.WriteEdgeList(cmd.OutOrStdout(), reduction.Graph)
			}
			f, err := os.Create(reduceopts.out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %v", reduceopts.out, err)
			}
			defer f.Close()
			if err := graph.WriteEdgeList(f, reduction.Graph); err != nil {
				return fmt.Errorf("failed to write %s: %v", reduceopts.out, err)
			}
			logrus.Infof("Wrote %s to %s.", reduction.Graph, reduceopts.out)
			return nil
		},
	}

	addGraphFlags(reduceCmd, &reduceopts.graphOpts)
	reduceCmd.Flags().StringVarP(&reduceopts.out, "output", "o", "reduced.txt", "where to write the reduced edge list, - for stdout")
	return reduceCmd
}
