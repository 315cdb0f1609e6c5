package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)
	opts := &convertOptions{}

	long := "gif2webm turns an animated GIF (or any animated raster image ImageMagick\n" +
		"can decompose) into a transparent VP9 WebM suitable for sticker and emoji\n" +
		"uploads. Frame timing is preserved and bounded to the profile's duration cap."

	rootCmd := &cobra.Command{
		Use:           "gif2webm <input> [output]",
		Short:         "Convert animated raster images to alpha-channel VP9 WebM",
		Long:          long,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "Output profile: sticker or emoji (default from config)")
	rootCmd.Flags().StringVarP(&opts.policy, "policy", "p", "", "Duration policy: cut or fit (default from config)")
	rootCmd.Flags().IntVarP(&opts.quality, "quality", "q", -1, "VP9 CRF quality, 0-63 (default from config)")
	rootCmd.Flags().BoolVarP(&opts.overwrite, "overwrite", "y", false, "Overwrite the output file if it exists")

	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
