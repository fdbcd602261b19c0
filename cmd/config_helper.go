package main

import (
	"time"

	"github.com/identifying-codes/mics/pkg/api/mics"
	"github.com/identifying-codes/mics/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type graphOpts struct {
	configFile string
	input      string
	fileType   string
}

func addGraphFlags(cmd *cobra.Command, opts *graphOpts) {
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file, defaults to "+config.RelPath+" in the XDG config directories")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "graph file to read")
	cmd.Flags().StringVarP(&opts.fileType, "file-type", "t", "txt", "input file type, csv (adjacency matrix) or txt (edge list)")
}

// baseConfig loads the explicitly given config file, the first config file found
// in the XDG config directories or the defaults, in that order.
func baseConfig(configFile string) (*mics.Config, error) {
	if configFile != "" {
		return config.LoadConfigFile(configFile)
	}
	if file, ok := config.Find(); ok {
		logrus.Debugf("Using config file %s.", file)
		return config.LoadConfigFile(file)
	}
	return config.Defaults(), nil
}

// loadConfig merges the config file with all flags set on the command line and
// validates the result.
func loadConfig(cmd *cobra.Command, opts *graphOpts, overrides func(cfg *mics.Config)) (*mics.Config, error) {
	cfg, err := baseConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("file-type") || cfg.FileType == "" {
		cfg.FileType = opts.fileType
	}
	if overrides != nil {
		overrides(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func durationFlag(d time.Duration) mics.Duration {
	return mics.Duration{Duration: d}
}
