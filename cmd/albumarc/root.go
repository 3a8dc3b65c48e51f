package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmazur/album-archiver/config"
	"github.com/tmazur/album-archiver/internal/meta"
	"github.com/tmazur/album-archiver/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "albumarc",
		Short:         "Archive albums into chapter-accurate lossless containers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configFlag != "" {
				cfg, err = config.Load(configFlag)
				if err != nil {
					return err
				}
			} else {
				cfg = config.Default()
			}
			slog.SetLogLoggerLevel(slog.Level(cfg.LogLevel))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	newRunner := func() *pipeline.Runner {
		uids := meta.NewGenerator(rand.NewSource(time.Now().UnixNano()))
		return pipeline.New(cfg, uids, os.Stdin, os.Stdout)
	}

	rootCmd.AddCommand(newRipCommand(newRunner, func() string { return cfg.Device }))
	rootCmd.AddCommand(newConvertCommand(newRunner))
	rootCmd.AddCommand(newSplitCommand(newRunner))
	rootCmd.AddCommand(newChaptersCommand(newRunner))

	return rootCmd
}

// exactArgs is cobra.ExactArgs plus the command's usage text, so an
// argument-count mismatch prints how to invoke the command.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("accepts %d arg(s), received %d\n\n%s",
				n, len(args), cmd.UsageString())
		}
		return nil
	}
}
