package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmazur/album-archiver/internal/pipeline"
)

func newRipCommand(newRunner func() *pipeline.Runner, defaultDevice func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "rip [device] <cover.jpg> <output.mka>",
		Short: "Archive a CD into a tagged, chapter-accurate container",
		Long: "Queries the disc's table of contents, rips and FLAC-encodes the audio\n" +
			"in the background while album metadata is collected interactively, then\n" +
			"muxes stream, cover, tags and chapters into the output container.\n" +
			"The device defaults to the configured CD drive.",
		Args: rangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			device := defaultDevice()
			if len(args) == 3 {
				device = args[0]
				args = args[1:]
			}
			return newRunner().Rip(cmd.Context(), device, args[0], args[1])
		},
	}
}

func newConvertCommand(newRunner func() *pipeline.Runner) *cobra.Command {
	var legacyChapters string

	cmd := &cobra.Command{
		Use:   "convert <input.mka> <cover.jpg> <output.mka>",
		Short: "Re-archive an existing container",
		Long: "Recovers chapters and tags from the source container, re-encodes its\n" +
			"lossless stream through a decode|encode pipeline, and muxes a fresh\n" +
			"archive.",
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRunner().Convert(cmd.Context(), args[0], args[1], args[2],
				pipeline.ConvertOptions{LegacyChaptersPath: legacyChapters})
		},
	}
	cmd.Flags().StringVar(&legacyChapters, "legacy-chapters", "",
		"Read track boundaries from a legacy CHAPTERnn text file (44100 Hz only)")
	return cmd
}

func newSplitCommand(newRunner func() *pipeline.Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "split <input.mka> <outdir>",
		Short: "Derive per-track MP3 files from an archive",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRunner().Split(cmd.Context(), args[0], args[1])
		},
	}
}

func newChaptersCommand(newRunner func() *pipeline.Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters <input.mka>",
		Short: "Print an archive's chapters in the legacy CHAPTERnn text form",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRunner().ExportLegacyChapters(cmd.Context(), args[0])
		},
	}
}

// rangeArgs mirrors exactArgs for commands with one optional positional.
func rangeArgs(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < min || len(args) > max {
			return fmt.Errorf("accepts between %d and %d arg(s), received %d\n\n%s",
				min, max, len(args), cmd.UsageString())
		}
		return nil
	}
}
