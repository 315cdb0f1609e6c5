package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gif2webm/internal/config"
	"gif2webm/internal/profile"
	"gif2webm/internal/schedule"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got %q", needle, haystack)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigShowPrintsEffectiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[conversion]\nmode = \"emoji\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, []string{"config", "show"}, path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "conversion.mode")
	requireContains(t, out, "emoji")
	requireContains(t, out, "exists: yes")
}

func TestDepsCommandReportsMissingBinaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[tools]\nmagick = \"definitely-not-magick\"\nffmpeg = \"definitely-not-ffmpeg\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, []string{"deps"}, path)
	if err == nil {
		t.Fatal("expected deps to fail when binaries are missing")
	}
	requireContains(t, out, "ImageMagick")
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "MISSING")
}

func TestDepsCommandAcceptsStubBinaries(t *testing.T) {
	binDir := t.TempDir()
	script := []byte("#!/bin/sh\necho 'stub version 1.0'\nexit 0\n")
	for _, name := range []string{"magick", "ffmpeg"} {
		if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[tools]\nmagick = \"" + filepath.Join(binDir, "magick") + "\"\nffmpeg = \"" + filepath.Join(binDir, "ffmpeg") + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, []string{"deps"}, path)
	if err != nil {
		t.Fatalf("deps with stub binaries: %v", err)
	}
	requireContains(t, out, "OK")
	requireContains(t, out, "stub version 1.0")
}

func TestBuildRequestDefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Conversion.Mode = "emoji"
	cfg.Conversion.Policy = "cut"
	cfg.Encoding.Quality = 45

	req, err := buildRequest(&cfg, &convertOptions{quality: -1}, []string{"/tmp/anim.gif"})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Profile.Kind != profile.KindEmoji {
		t.Fatalf("mode default not applied: %+v", req.Profile)
	}
	if req.Policy != schedule.PolicyCut {
		t.Fatalf("policy default not applied: %v", req.Policy)
	}
	if req.Quality != 45 {
		t.Fatalf("quality default not applied: %d", req.Quality)
	}
	if req.Output != "/tmp/anim.webm" {
		t.Fatalf("output not derived: %q", req.Output)
	}
}

func TestBuildRequestFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	opts := &convertOptions{mode: "sticker", policy: "fit", quality: 20, overwrite: true}

	req, err := buildRequest(&cfg, opts, []string{"in.gif", "custom.webm"})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Profile.Kind != profile.KindSticker || req.Policy != schedule.PolicyFit {
		t.Fatalf("flag overrides not applied: %+v", req)
	}
	if req.Quality != 20 || !req.Overwrite {
		t.Fatalf("flag overrides not applied: %+v", req)
	}
	if req.Output != "custom.webm" {
		t.Fatalf("explicit output not kept: %q", req.Output)
	}
}

func TestBuildRequestRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cases := []struct {
		name string
		opts convertOptions
	}{
		{"mode", convertOptions{mode: "poster", quality: -1}},
		{"policy", convertOptions{policy: "stretch", quality: -1}},
		{"quality", convertOptions{quality: 90}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := buildRequest(&cfg, &tc.opts, []string{"in.gif"}); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestOutputPathFor(t *testing.T) {
	cases := []struct {
		source string
		output string
		want   string
	}{
		{"anim.gif", "", "anim.webm"},
		{"/a/b/clip.apng", "", "/a/b/clip.webm"},
		{"noext", "", "noext.webm"},
		{"anim.gif", "given.webm", "given.webm"},
	}
	for _, tc := range cases {
		if got := outputPathFor(tc.source, tc.output); got != tc.want {
			t.Fatalf("outputPathFor(%q, %q) = %q, want %q", tc.source, tc.output, got, tc.want)
		}
	}
}
