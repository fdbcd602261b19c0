package main

import (
	"fmt"

	"github.com/identifying-codes/mics/pkg/graph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type verifyOpts struct {
	graphOpts
	monitors []string
}

var verifyopts = verifyOpts{}

func NewVerifyCmd() *cobra.Command {

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "verifies that a set of monitors is an identifying code",
		Long:  `checks that every node of the input graph is covered by a monitor and that no two nodes share a monitor signature`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &verifyopts.graphOpts, nil)
			if err != nil {
				return err
			}
			fileType, err := graph.ParseFileType(cfg.FileType)
			if err != nil {
				return err
			}
			g, _, err := graph.Load(cmd.Context(), fileType, cfg.Input)
			if err != nil {
				return err
			}
			monitors, err := graph.ResolveLabels(g, verifyopts.monitors)
			if err != nil {
				return err
			}
			if err := graph.Verify(g, monitors); err != nil {
				return err
			}
			logrus.Infof("%d monitors identify all %d nodes.", len(monitors), g.Len())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return err
		},
	}

	addGraphFlags(verifyCmd, &verifyopts.graphOpts)
	verifyCmd.Flags().StringSliceVarP(&verifyopts.monitors, "monitors", "m", nil, "comma separated labels of the monitor nodes")
	if err := verifyCmd.MarkFlagRequired("monitors"); err != nil {
		panic(err)
	}
	return verifyCmd
}
