package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"gif2webm/internal/config"
	"gif2webm/internal/pipeline"
	"gif2webm/internal/profile"
	"gif2webm/internal/schedule"
)

type convertOptions struct {
	mode      string
	policy    string
	quality   int
	overwrite bool
}

func runConvert(cmd *cobra.Command, cmdCtx *commandContext, opts *convertOptions, args []string) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	req, err := buildRequest(cfg, opts, args)
	if err != nil {
		return err
	}

	logger, err := cmdCtx.newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conv := pipeline.New(cfg, logger)
	if err := conv.Convert(ctx, req); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", req.Output)
	return nil
}

func buildRequest(cfg *config.Config, opts *convertOptions, args []string) (pipeline.Request, error) {
	mode := opts.mode
	if strings.TrimSpace(mode) == "" {
		mode = cfg.Conversion.Mode
	}
	prof, err := profile.ForKind(mode)
	if err != nil {
		return pipeline.Request{}, err
	}

	policyName := opts.policy
	if strings.TrimSpace(policyName) == "" {
		policyName = cfg.Conversion.Policy
	}
	policy, err := schedule.ParsePolicy(policyName)
	if err != nil {
		return pipeline.Request{}, err
	}

	quality := opts.quality
	if quality < 0 {
		quality = cfg.Encoding.Quality
	}
	if quality > 63 {
		return pipeline.Request{}, fmt.Errorf("quality %d out of range (want 0-63)", quality)
	}

	source := args[0]
	output := ""
	if len(args) > 1 {
		output = args[1]
	}

	return pipeline.Request{
		Source:    source,
		Output:    outputPathFor(source, output),
		Profile:   prof,
		Policy:    policy,
		Quality:   quality,
		Overwrite: opts.overwrite,
	}, nil
}

// outputPathFor derives the output location when none was given: the source
// path with its extension swapped for .webm.
func outputPathFor(source, output string) string {
	if strings.TrimSpace(output) != "" {
		return output
	}
	ext := filepath.Ext(source)
	return strings.TrimSuffix(source, ext) + ".webm"
}
