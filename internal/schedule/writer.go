package schedule

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Write serializes the schedule into the ffconcat demuxer format at path.
// The file is written atomically: a temporary sibling is renamed into place.
func Write(sched Schedule, path string) error {
	if len(sched.Entries) == 0 && sched.Sentinel == "" {
		return errors.New("refusing to write empty schedule")
	}

	var builder strings.Builder
	builder.WriteString("ffconcat version 1.0\n")
	for _, entry := range sched.Entries {
		fmt.Fprintf(&builder, "file '%s'\n", escapePath(entry.Path))
		fmt.Fprintf(&builder, "duration %s\n", FormatDuration(entry.Duration))
	}
	fmt.Fprintf(&builder, "file '%s'\n", escapePath(sched.Sentinel))

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize schedule: %w", err)
	}
	return nil
}

// escapePath normalizes separators and escapes single quotes so the path can
// sit inside the single-quoted file token.
func escapePath(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	return strings.ReplaceAll(normalized, "'", `'\''`)
}

// FormatDuration renders seconds as locale-invariant fixed-point decimal with
// at most 8 fractional digits. The demuxer rejects exponent notation and
// grouping separators.
func FormatDuration(seconds float64) string {
	text := strconv.FormatFloat(seconds, 'f', 8, 64)
	text = strings.TrimRight(text, "0")
	text = strings.TrimSuffix(text, ".")
	if text == "" || text == "-" {
		return "0"
	}
	return text
}
