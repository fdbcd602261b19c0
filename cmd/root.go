package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOpts struct {
	logLevel string
}

var rootopts = rootOpts{}

var rootCmd = &cobra.Command{
	Use:   "mics",
	Short: "mics computes minimum identifying code sets of undirected graphs",
	Long: `The tool selects the smallest set of monitor nodes such that every node of a graph is identified
by the unique, non-empty set of monitors in its closed neighborhood. Twin nodes are collapsed before the
problem is handed to an exact 0/1 solver.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(rootopts.logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

func Execute() {
	rootCmd.PersistentFlags().StringVar(&rootopts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(NewSolveCmd())
	rootCmd.AddCommand(NewReduceCmd())
	rootCmd.AddCommand(NewVerifyCmd())
	rootCmd.AddCommand(NewInitCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
