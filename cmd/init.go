package main

import (
	"github.com/identifying-codes/mics/pkg/config"
	"github.com/spf13/cobra"
)

type initOpts struct {
	out string
}

var initopts = initOpts{}

func NewInitCmd() *cobra.Command {

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Long:  `Create a config file with default settings, by default in the XDG config directory`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.NewConfigInit(initopts.out).Init()
		},
	}

	initCmd.Flags().StringVarP(&initopts.out, "output", "o", "", "where to write the config file, defaults to "+config.DefaultPath())
	return initCmd
}
