package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"gif2webm/internal/config"
	"gif2webm/internal/logging"
	"gif2webm/internal/profile"
	"gif2webm/internal/schedule"
	"gif2webm/internal/services"
	"gif2webm/internal/services/ffmpeg"
	"gif2webm/internal/services/magick"
	"gif2webm/internal/toolrun"
	"gif2webm/internal/workspace"
)

// mismatchWarnThreshold is the frame/delay count difference above which the
// pipeline logs a desynchronization diagnostic.
const mismatchWarnThreshold = 2

// scheduleFileName is the concat description written into the workspace.
const scheduleFileName = "frames.ffconcat"

// FrameTool covers the extraction and timing queries the pipeline needs.
type FrameTool interface {
	ExtractFrames(ctx context.Context, source, dir string) ([]string, error)
	ReadDelays(ctx context.Context, source string) ([]float64, int, error)
}

// EncodeTool renders a written schedule into the output artifact.
type EncodeTool interface {
	Encode(ctx context.Context, req ffmpeg.EncodeRequest) error
}

// Request describes one conversion.
type Request struct {
	Source    string
	Output    string
	Profile   profile.Profile
	Policy    schedule.Policy
	Quality   int
	Overwrite bool
}

// Option configures the converter.
type Option func(*Converter)

// WithFrameTool injects a custom frame tool (primarily for tests).
func WithFrameTool(tool FrameTool) Option {
	return func(c *Converter) {
		if tool != nil {
			c.frames = tool
		}
	}
}

// WithEncodeTool injects a custom encoder (primarily for tests).
func WithEncodeTool(tool EncodeTool) Option {
	return func(c *Converter) {
		if tool != nil {
			c.encoder = tool
		}
	}
}

// Converter drives the conversion pipeline.
type Converter struct {
	cfg     *config.Config
	frames  FrameTool
	encoder EncodeTool
	logger  *slog.Logger
}

// New constructs a converter wired to the real external tools.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Converter {
	if logger == nil {
		logger = logging.NewNop()
	}
	conv := &Converter{
		cfg:     cfg,
		frames:  magick.New(cfg.MagickBinary()),
		encoder: ffmpeg.New(cfg.FFmpegBinary()),
		logger:  logging.NewComponentLogger(logger, "pipeline"),
	}
	for _, opt := range opts {
		opt(conv)
	}
	return conv
}

// Convert runs the full pipeline for one request.
func (c *Converter) Convert(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.Source) == "" {
		return services.Wrap(services.ErrValidation, "convert", "", "source path required", nil)
	}
	if strings.TrimSpace(req.Output) == "" {
		return services.Wrap(services.ErrValidation, "convert", "", "output path required", nil)
	}
	if _, err := os.Stat(req.Source); err != nil {
		return services.Wrap(services.ErrValidation, "convert", "stat source", "", err)
	}

	ctx = services.WithConversionID(ctx, uuid.NewString()[:8])
	logger := logging.WithContext(ctx, c.logger)

	lockPath := req.Output + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "convert", "lock output", "", err)
	}
	if !locked {
		return services.Wrap(services.ErrValidation, "convert", "lock output",
			fmt.Sprintf("another conversion is writing %s", req.Output), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	ws, err := workspace.New(c.cfg.Conversion.WorkDir, logger)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "convert", "create workspace", "", err)
	}
	defer ws.Release()

	logger.Info("conversion started",
		"source", req.Source,
		"output", req.Output,
		"mode", string(req.Profile.Kind),
		"policy", req.Policy.String(),
	)

	frames, err := c.extract(ctx, req.Source, ws.Dir())
	if err != nil {
		return err
	}
	delays, err := c.readDelays(ctx, req.Source)
	if err != nil {
		return err
	}
	schedulePath, sched, err := c.buildSchedule(ctx, frames, delays, req, ws)
	if err != nil {
		return err
	}
	if err := c.encode(ctx, schedulePath, req); err != nil {
		return err
	}

	logger.Info("conversion finished",
		"frames", len(sched.Entries),
		"duration_seconds", sched.TotalDuration(),
		"output", req.Output,
	)
	return nil
}

func (c *Converter) extract(ctx context.Context, source, dir string) ([]string, error) {
	ctx = services.WithStage(ctx, "extract")
	logger := logging.WithContext(ctx, c.logger)
	logger.Debug("extracting frames", "source", source)

	frames, err := c.frames.ExtractFrames(ctx, source, dir)
	if err != nil {
		return nil, classify("extract", "decompose source", err)
	}
	logger.Debug("frames extracted", "count", len(frames))
	return frames, nil
}

func (c *Converter) readDelays(ctx context.Context, source string) ([]float64, error) {
	ctx = services.WithStage(ctx, "timing")
	logger := logging.WithContext(ctx, c.logger)

	delays, skipped, err := c.frames.ReadDelays(ctx, source)
	if err != nil {
		return nil, classify("timing", "query frame delays", err)
	}
	if skipped > 0 {
		logger.Warn("skipped malformed timing lines", "skipped", skipped, "parsed", len(delays))
	}
	return delays, nil
}

func (c *Converter) buildSchedule(ctx context.Context, frames []string, delays []float64, req Request, ws *workspace.Workspace) (string, schedule.Schedule, error) {
	ctx = services.WithStage(ctx, "schedule")
	logger := logging.WithContext(ctx, c.logger)

	sched, err := schedule.Build(frames, delays, req.Profile.MaxDuration, req.Policy)
	if err != nil {
		return "", schedule.Schedule{}, classify("schedule", "build playback schedule", err)
	}
	if sched.Mismatch > mismatchWarnThreshold {
		logger.Warn("frame and delay counts disagree",
			"frames", len(frames),
			"delays", len(delays),
			"mismatch", sched.Mismatch,
		)
	}

	path := ws.Path(scheduleFileName)
	if err := schedule.Write(sched, path); err != nil {
		return "", schedule.Schedule{}, classify("schedule", "write concat description", err)
	}
	logger.Debug("schedule written",
		"path", path,
		"entries", len(sched.Entries),
		"duration_seconds", sched.TotalDuration(),
	)
	return path, sched, nil
}

func (c *Converter) encode(ctx context.Context, schedulePath string, req Request) error {
	ctx = services.WithStage(ctx, "encode")
	logger := logging.WithContext(ctx, c.logger)
	logger.Debug("encoding", "schedule", schedulePath, "output", req.Output)

	err := c.encoder.Encode(ctx, ffmpeg.EncodeRequest{
		SchedulePath: schedulePath,
		OutputPath:   req.Output,
		Profile:      req.Profile,
		Quality:      req.Quality,
		Overwrite:    req.Overwrite,
		Threads:      c.cfg.Encoding.Threads,
		RowMT:        c.cfg.Encoding.RowMT,
	})
	if err != nil {
		return classify("encode", "run encoder", err)
	}
	return nil
}

// classify maps step failures onto the shared error taxonomy. Cancellations
// pass through untouched so callers never mistake an abort for a tool
// failure.
func classify(stage, operation string, err error) error {
	if err == nil {
		return nil
	}
	if services.IsCancellation(err) {
		return err
	}

	var startErr *toolrun.StartError
	if errors.As(err, &startErr) {
		return services.Wrap(services.ErrToolStart, stage, operation, "", err)
	}
	var exitErr *toolrun.ExitError
	if errors.As(err, &exitErr) {
		return services.Wrap(services.ErrExternalTool, stage, operation, "", err)
	}
	if errors.Is(err, magick.ErrNoFrames) || errors.Is(err, magick.ErrNoTimingData) || errors.Is(err, schedule.ErrEmptyFrameSet) {
		return services.Wrap(services.ErrValidation, stage, operation, "", err)
	}
	return services.Wrap(services.ErrExternalTool, stage, operation, "", err)
}
