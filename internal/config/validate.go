package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateConversion(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEncoding() error {
	if c.Encoding.Quality < 0 || c.Encoding.Quality > 63 {
		return fmt.Errorf("encoding.quality must be between 0 and 63, got %d", c.Encoding.Quality)
	}
	if c.Encoding.Threads < 0 {
		return errors.New("encoding.threads must not be negative")
	}
	return nil
}

func (c *Config) validateConversion() error {
	switch c.Conversion.Mode {
	case "sticker", "emoji":
	default:
		return fmt.Errorf("conversion.mode must be sticker or emoji, got %q", c.Conversion.Mode)
	}
	switch c.Conversion.Policy {
	case "cut", "fit":
	default:
		return fmt.Errorf("conversion.policy must be cut or fit, got %q", c.Conversion.Policy)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
