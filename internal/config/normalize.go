package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Tools.Magick = strings.TrimSpace(c.Tools.Magick)
	if c.Tools.Magick == "" {
		c.Tools.Magick = defaultMagickBinary
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}

	c.Conversion.Mode = strings.ToLower(strings.TrimSpace(c.Conversion.Mode))
	if c.Conversion.Mode == "" {
		c.Conversion.Mode = defaultMode
	}
	c.Conversion.Policy = strings.ToLower(strings.TrimSpace(c.Conversion.Policy))
	if c.Conversion.Policy == "" {
		c.Conversion.Policy = defaultPolicy
	}

	var err error
	if strings.TrimSpace(c.Conversion.WorkDir) != "" {
		if c.Conversion.WorkDir, err = expandPath(c.Conversion.WorkDir); err != nil {
			return fmt.Errorf("conversion.work_dir: %w", err)
		}
	} else {
		c.Conversion.WorkDir = ""
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.LogDir) != "" {
		if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
			return fmt.Errorf("logging.log_dir: %w", err)
		}
	} else {
		c.Logging.LogDir = ""
	}
	return nil
}
