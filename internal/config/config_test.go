package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gif2webm/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Tools.Magick != "magick" || cfg.Tools.FFmpeg != "ffmpeg" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.Encoding.Quality != 30 {
		t.Fatalf("unexpected quality default: %d", cfg.Encoding.Quality)
	}
	if cfg.Conversion.Mode != "sticker" || cfg.Conversion.Policy != "fit" {
		t.Fatalf("unexpected conversion defaults: %+v", cfg.Conversion)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[tools]
magick = "convert"

[encoding]
quality = 40
threads = 2
row_mt = false

[conversion]
mode = "emoji"
policy = "cut"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if resolved != path {
		t.Fatalf("resolved path %q, want %q", resolved, path)
	}
	if cfg.Tools.Magick != "convert" {
		t.Fatalf("magick override not applied: %q", cfg.Tools.Magick)
	}
	if cfg.Encoding.Quality != 40 || cfg.Encoding.Threads != 2 || cfg.Encoding.RowMT {
		t.Fatalf("encoding overrides not applied: %+v", cfg.Encoding)
	}
	if cfg.Conversion.Mode != "emoji" || cfg.Conversion.Policy != "cut" {
		t.Fatalf("conversion overrides not applied: %+v", cfg.Conversion)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging overrides not applied: %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"quality", "[encoding]\nquality = 90\n", "encoding.quality"},
		{"threads", "[encoding]\nthreads = -1\n", "encoding.threads"},
		{"mode", "[conversion]\nmode = \"poster\"\n", "conversion.mode"},
		{"policy", "[conversion]\npolicy = \"stretch\"\n", "conversion.policy"},
		{"format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %s error, got %v", tc.want, err)
			}
		})
	}
}

func TestNormalizeLowercasesAndTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[conversion]\nmode = \" Sticker \"\npolicy = \"CUT\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Conversion.Mode != "sticker" || cfg.Conversion.Policy != "cut" {
		t.Fatalf("normalization not applied: %+v", cfg.Conversion)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Tools.Magick != "magick" {
		t.Fatalf("sample should carry defaults, got %+v", cfg.Tools)
	}
}
