package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gif2webm/internal/profile"
	"gif2webm/internal/toolrun"
)

// Option configures the client.
type Option func(*Client)

// WithRunner injects a custom runner (primarily for tests).
func WithRunner(runner toolrun.Runner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary string
	runner toolrun.Runner
}

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	client := &Client{binary: binary, runner: toolrun.NewSupervisor()}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// EncodeRequest describes one encoding run.
type EncodeRequest struct {
	// SchedulePath is the concat description listing frames and durations.
	SchedulePath string
	// OutputPath receives the finished WebM.
	OutputPath string
	Profile    profile.Profile
	// Quality is the CRF value; lower is better quality.
	Quality int
	// Overwrite replaces an existing output instead of failing.
	Overwrite bool
	Threads   int
	RowMT     bool
}

// Encode renders the schedule into the output file. The explicit per-frame
// durations from the schedule are honored via variable frame-rate timestamps
// rather than constant-rate resampling.
func (c *Client) Encode(ctx context.Context, req EncodeRequest) error {
	if strings.TrimSpace(req.SchedulePath) == "" {
		return errors.New("schedule path required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return errors.New("output path required")
	}

	if _, err := c.runner.Run(ctx, toolrun.Command{Binary: c.binary, Args: buildArgs(req)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func buildArgs(req EncodeRequest) []string {
	overwrite := "-n"
	if req.Overwrite {
		overwrite = "-y"
	}

	args := []string{
		overwrite,
		"-f", "concat",
		"-safe", "0",
		"-i", req.SchedulePath,
		"-t", strconv.FormatFloat(req.Profile.MaxDuration, 'f', -1, 64),
		"-vf", filterGraph(req.Profile),
		"-fps_mode", "vfr",
		"-c:v", "libvpx-vp9",
		"-pix_fmt", "yuva420p",
		"-crf", strconv.Itoa(req.Quality),
		"-b:v", "0",
		"-an",
	}
	if req.RowMT {
		args = append(args, "-row-mt", "1")
	}
	if req.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(req.Threads))
	}
	return append(args, req.OutputPath)
}

// filterGraph builds the scaling chain for the target profile. Both shapes
// end in a yuva420p reformat so transparency survives encoding.
func filterGraph(p profile.Profile) string {
	if p.AdaptiveHeight {
		// Longer side becomes the fixed dimension; -2 rounds the scaled
		// side to the even count the pixel format requires.
		size := strconv.Itoa(p.Width)
		return fmt.Sprintf(
			"scale=w='if(gte(iw,ih),%s,-2)':h='if(gte(iw,ih),-2,%s)',format=yuva420p",
			size, size,
		)
	}
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=0x00000000,format=yuva420p",
		p.Width, p.Height, p.Width, p.Height,
	)
}
