package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// MinFrameDuration is the floor applied to every frame display duration, in
// seconds. A zero-duration segment would be rejected by the demuxer.
const MinFrameDuration = 0.001

// ErrEmptyFrameSet reports that no usable frames were available to schedule.
var ErrEmptyFrameSet = errors.New("no usable frames to schedule")

// Policy selects how a schedule is bounded to the maximum duration.
type Policy int

const (
	// PolicyCut truncates trailing frames, preserving per-frame timing.
	PolicyCut Policy = iota
	// PolicyFit keeps every frame, compressing time proportionally.
	PolicyFit
)

func (p Policy) String() string {
	switch p {
	case PolicyCut:
		return "cut"
	case PolicyFit:
		return "fit"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy resolves a policy name from user input.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "cut":
		return PolicyCut, nil
	case "fit":
		return PolicyFit, nil
	default:
		return PolicyCut, fmt.Errorf("unknown policy %q (want cut or fit)", value)
	}
}

// Entry pairs one frame file with its display duration in the output.
type Entry struct {
	Path     string
	Duration float64
}

// Schedule is an ordered frame playback plan. The sentinel repeats the final
// frame without a duration; the concat format needs it to mark the end time
// of the last timed entry.
type Schedule struct {
	Entries  []Entry
	Sentinel string

	// Mismatch is the difference between the frame and delay counts the
	// builder was given. The shorter sequence wins; a large mismatch hints
	// at tool desynchronization and is worth a diagnostic.
	Mismatch int
}

// TotalDuration sums the non-sentinel entry durations.
func (s Schedule) TotalDuration() float64 {
	total := 0.0
	for _, entry := range s.Entries {
		total += entry.Duration
	}
	return total
}

// Build produces a playback schedule bounded by maxDuration seconds. The
// usable frame count is the shorter of the two input sequences; excess in
// either is ignored.
func Build(frames []string, delays []float64, maxDuration float64, policy Policy) (Schedule, error) {
	usable := len(frames)
	if len(delays) < usable {
		usable = len(delays)
	}
	if usable == 0 {
		return Schedule{}, ErrEmptyFrameSet
	}
	if maxDuration <= 0 {
		return Schedule{}, fmt.Errorf("max duration must be positive, got %v", maxDuration)
	}

	mismatch := len(frames) - len(delays)
	if mismatch < 0 {
		mismatch = -mismatch
	}

	switch policy {
	case PolicyCut:
		return buildCut(frames, delays, usable, maxDuration, mismatch), nil
	case PolicyFit:
		return buildFit(frames, delays, usable, maxDuration, mismatch), nil
	default:
		return Schedule{}, fmt.Errorf("unknown policy %v", policy)
	}
}

// buildCut accumulates frames in order and stops before the frame whose delay
// would push the running total past the cap.
func buildCut(frames []string, delays []float64, usable int, maxDuration float64, mismatch int) Schedule {
	entries := make([]Entry, 0, usable)
	total := 0.0
	for i := 0; i < usable; i++ {
		delay := clampDelay(delays[i])
		if total+delay > maxDuration {
			break
		}
		entries = append(entries, Entry{Path: frames[i], Duration: delay})
		total += delay
	}

	// Degenerate fallback: the first frame alone overflows the cap. The
	// schedule still needs a file reference, so the sentinel carries it.
	sentinel := frames[0]
	if len(entries) > 0 {
		sentinel = entries[len(entries)-1].Path
	}
	return Schedule{Entries: entries, Sentinel: sentinel, Mismatch: mismatch}
}

// buildFit keeps every usable frame and derives a time scale so the total
// duration fits the cap. Short clips are never slowed down to fill it.
func buildFit(frames []string, delays []float64, usable int, maxDuration float64, mismatch int) Schedule {
	total := 0.0
	for i := 0; i < usable; i++ {
		total += clampDelay(delays[i])
	}
	if total <= 0 {
		total = float64(usable) * MinFrameDuration
	}

	scale := 1.0
	if total > maxDuration {
		scale = maxDuration / total
	}

	entries := make([]Entry, 0, usable)
	for i := 0; i < usable; i++ {
		entries = append(entries, Entry{
			Path:     frames[i],
			Duration: clampDelay(clampDelay(delays[i]) * scale),
		})
	}
	return Schedule{Entries: entries, Sentinel: frames[usable-1], Mismatch: mismatch}
}

func clampDelay(delay float64) float64 {
	if delay < MinFrameDuration {
		return MinFrameDuration
	}
	return delay
}
