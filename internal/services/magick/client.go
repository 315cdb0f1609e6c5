package magick

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gif2webm/internal/schedule"
	"gif2webm/internal/toolrun"
)

// FramePattern is the numbered output template handed to the extractor. The
// zero-padded index keeps lexicographic order equal to frame order.
const FramePattern = "frame_%04d.png"

var (
	// ErrNoFrames reports an extraction run that exited cleanly but left no
	// frame files behind; the source is not a supported animation.
	ErrNoFrames = errors.New("no frames produced")
	// ErrNoTimingData reports a timing query that yielded zero usable
	// delays; the source is likely not animated.
	ErrNoTimingData = errors.New("no timing data")
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

// Client wraps ImageMagick CLI interactions.
type Client struct {
	binary string
	runner toolrun.Runner
}

// New constructs an ImageMagick client.
func New(binary string, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "magick"
	}
	client := &Client{binary: binary, runner: toolrun.NewSupervisor()}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ExtractFrames decomposes the source into numbered standalone frame files
// inside dir and returns their paths in frame order. Each output is fully
// composited with alpha preserved, never a delta against the previous frame.
func (c *Client) ExtractFrames(ctx context.Context, source, dir string) ([]string, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("source path required")
	}
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("destination directory required")
	}

	args := []string{source, "-coalesce", "-background", "none", "-alpha", "on", filepath.Join(dir, FramePattern)}
	if _, err := c.runner.Run(ctx, toolrun.Command{Binary: c.binary, Args: args}); err != nil {
		return nil, fmt.Errorf("extract frames: %w", err)
	}

	frames, err := filepath.Glob(filepath.Join(dir, "frame_*.png"))
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	sort.Strings(frames)
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoFrames, source)
	}
	return frames, nil
}

// ReadDelays queries per-frame delays from the source and returns them in
// seconds, floored at the minimum frame duration. Malformed lines are skipped
// and reported through the second return value so the caller can log them.
func (c *Client) ReadDelays(ctx context.Context, source string) ([]float64, int, error) {
	if strings.TrimSpace(source) == "" {
		return nil, 0, errors.New("source path required")
	}

	result, err := c.runner.Run(ctx, toolrun.Command{
		Binary: c.binary,
		Args:   []string{"identify", "-format", "%T\n", source},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("read delays: %w", err)
	}

	delays := make([]float64, 0, 16)
	skipped := 0
	for _, line := range strings.Split(result.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		centiseconds, err := strconv.Atoi(line)
		if err != nil {
			skipped++
			continue
		}
		seconds := float64(centiseconds) / 100.0
		if seconds < schedule.MinFrameDuration {
			seconds = schedule.MinFrameDuration
		}
		delays = append(delays, seconds)
	}
	if len(delays) == 0 {
		return nil, skipped, fmt.Errorf("%w for %s", ErrNoTimingData, source)
	}
	return delays, skipped, nil
}
