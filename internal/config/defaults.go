package config

const (
	defaultMagickBinary = "magick"
	defaultFFmpegBinary = "ffmpeg"
	defaultQuality      = 30
	defaultThreads      = 4
	defaultRowMT        = true
	defaultMode         = "sticker"
	defaultPolicy       = "fit"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			Magick: defaultMagickBinary,
			FFmpeg: defaultFFmpegBinary,
		},
		Encoding: Encoding{
			Quality: defaultQuality,
			Threads: defaultThreads,
			RowMT:   defaultRowMT,
		},
		Conversion: Conversion{
			Mode:   defaultMode,
			Policy: defaultPolicy,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
